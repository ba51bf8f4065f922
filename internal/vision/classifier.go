package vision

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"sort"

	"github.com/nfnt/resize"
	ort "github.com/yalue/onnxruntime_go"
)

// Metadata describes a serialized model: tensor shapes and the class names in
// output order.
type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

// ClassScore is one entry of a ranked prediction.
type ClassScore struct {
	Class string  `json:"class"`
	Score float32 `json:"score"`
}

// Prediction is the ranked output for one image.
type Prediction struct {
	Class      string       `json:"class"`
	Confidence float32      `json:"confidence"`
	Top        []ClassScore `json:"top"`
}

// Classifier runs an ONNX image-classification model. Not safe for concurrent
// Predict calls: the session reuses its input and output tensors.
type Classifier struct {
	session      *ort.AdvancedSession
	metadata     Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// LoadClassifier initializes the ONNX runtime and builds a session over the
// model file and its metadata JSON.
func LoadClassifier(modelPath, metadataPath string) (*Classifier, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if len(metadata.Classes) == 0 {
		return nil, fmt.Errorf("metadata lists no classes")
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Classifier{
		session:      session,
		metadata:     metadata,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

func (c *Classifier) Metadata() Metadata {
	return c.metadata
}

// Predict runs raw input data through the model and ranks the class scores.
func (c *Classifier) Predict(inputData []float32) (*Prediction, error) {
	if len(inputData) != len(c.inputTensor.GetData()) {
		return nil, fmt.Errorf("expected %d input values, got %d",
			len(c.inputTensor.GetData()), len(inputData))
	}

	copy(c.inputTensor.GetData(), inputData)

	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	outputData := c.outputTensor.GetData()

	ranked := make([]ClassScore, 0, len(c.metadata.Classes))
	for i, class := range c.metadata.Classes {
		if i >= len(outputData) {
			break
		}
		ranked = append(ranked, ClassScore{Class: class, Score: outputData[i]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return &Prediction{
		Class:      ranked[0].Class,
		Confidence: ranked[0].Score,
		Top:        ranked,
	}, nil
}

// PredictImage preprocesses an image and classifies it.
func (c *Classifier) PredictImage(img image.Image) (*Prediction, error) {
	return c.Predict(c.preprocess(img))
}

// preprocess resizes to the model's input size and lays pixels out
// channel-first, normalized to [0, 1].
func (c *Classifier) preprocess(img image.Image) []float32 {
	targetSize := uint(c.metadata.ImageSize)
	resized := resize.Resize(targetSize, targetSize, img, resize.Lanczos3)

	bounds := resized.Bounds()
	width, height := bounds.Max.X, bounds.Max.Y

	inputData := make([]float32, 3*width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()

			pixelIndex := y*width + x
			inputData[pixelIndex] = float32(r) / 65535.0
			inputData[width*height+pixelIndex] = float32(g) / 65535.0
			inputData[2*width*height+pixelIndex] = float32(b) / 65535.0
		}
	}

	return inputData
}

func (c *Classifier) Close() {
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}
