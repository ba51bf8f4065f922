package sentiment

import (
	"context"
	"math"

	"github.com/jonreiter/govader"
)

// Compound-score thresholds for the three-way split.
const (
	vaderPositiveThreshold = 0.20
	vaderNegativeThreshold = -0.20
)

// VaderEngine scores text with the VADER lexicon. No model files, no network;
// useful as a lightweight fallback when no ONNX model is available.
type VaderEngine struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderEngine() *VaderEngine {
	return &VaderEngine{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (e *VaderEngine) Name() string { return "vader" }

func (e *VaderEngine) Classify(ctx context.Context, texts []string) ([]Prediction, error) {
	predictions := make([]Prediction, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scores := e.analyzer.PolarityScores(text)
		compound := scores.Compound

		var label string
		switch {
		case compound >= vaderPositiveThreshold:
			label = LabelPositive
		case compound <= vaderNegativeThreshold:
			label = LabelNegative
		default:
			label = LabelNeutral
		}

		predictions = append(predictions, Prediction{
			Label: label,
			Score: math.Abs(compound),
		})
	}

	return predictions, nil
}
