package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"sentiserve/config"
)

// HugotEngine runs a local ONNX text-classification pipeline. The model is
// downloaded into the configured model directory on first use.
type HugotEngine struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	model    string
}

func NewHugotEngine(settings config.Settings) (*HugotEngine, error) {
	modelPath, err := ensureModel(settings)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("[HugotEngine] failed to initialize ORT session: %w", err)
	}

	pipelineConfig := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentClassificationPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, pipelineConfig)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("[HugotEngine] failed to initialize pipeline: %w", err)
	}

	slog.Info("[HugotEngine] Pipeline ready",
		slog.String("model", settings.ModelName),
		slog.String("path", modelPath),
		slog.String("task", settings.PipelineTask),
		slog.Int("device", settings.Device))

	return &HugotEngine{
		session:  session,
		pipeline: pipeline,
		model:    settings.ModelName,
	}, nil
}

func ensureModel(settings config.Settings) (string, error) {
	if err := os.MkdirAll(settings.ModelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("[HugotEngine] failed to create model directory: %w", err)
	}

	localPath := filepath.Join(settings.ModelDir, strings.ReplaceAll(settings.ModelName, "/", "_"))
	if _, err := os.Stat(localPath); err == nil {
		slog.Info("[HugotEngine] Using existing model", slog.String("path", localPath))
		return localPath, nil
	}

	slog.Info("[HugotEngine] Model not found, downloading...",
		slog.String("model", settings.ModelName),
		slog.String("revision", settings.ModelRevision))
	modelPath, err := hugot.DownloadModel(settings.ModelName, settings.ModelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("[HugotEngine] failed to download model %s: %w", settings.ModelName, err)
	}
	slog.Info("[HugotEngine] Model downloaded successfully", slog.String("path", modelPath))

	return modelPath, nil
}

func (e *HugotEngine) Name() string { return "hugot" }

func (e *HugotEngine) Classify(ctx context.Context, texts []string) ([]Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := e.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("[HugotEngine] inference failed: %w", err)
	}

	if len(output.ClassificationOutputs) != len(texts) {
		return nil, fmt.Errorf("[HugotEngine] expected %d outputs, got %d",
			len(texts), len(output.ClassificationOutputs))
	}

	predictions := make([]Prediction, 0, len(texts))
	for i, classes := range output.ClassificationOutputs {
		if len(classes) == 0 {
			return nil, fmt.Errorf("[HugotEngine] no classes returned for input %d", i)
		}
		best := classes[0]
		for _, class := range classes[1:] {
			if class.Score > best.Score {
				best = class
			}
		}
		predictions = append(predictions, Prediction{
			Label: best.Label,
			Score: float64(best.Score),
		})
	}

	return predictions, nil
}

// Close releases the ORT session. The pipeline is owned by the session.
func (e *HugotEngine) Close() error {
	if e.session != nil {
		return e.session.Destroy()
	}
	return nil
}
