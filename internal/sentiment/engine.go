package sentiment

import "context"

// Prediction is one raw classifier output before normalization.
type Prediction struct {
	Label string
	Score float64
}

// Engine classifies texts. Implementations must return exactly one prediction
// per input, in input order.
type Engine interface {
	// Name identifies the engine kind (hugot, vader, openai).
	Name() string
	// Classify scores every text. An error means the whole batch failed;
	// there are no partial results.
	Classify(ctx context.Context, texts []string) ([]Prediction, error)
}
