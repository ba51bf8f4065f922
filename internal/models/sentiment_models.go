package models

// SentimentResult is produced per input text. It lives for the duration of
// the HTTP response; the batch worker additionally persists it with its
// content ID.
type SentimentResult struct {
	Label    string  `json:"label"`
	Score    float64 `json:"score"`
	Model    string  `json:"model"`
	Language *string `json:"language"`
}

type SentimentRequest struct {
	Text     string  `json:"text"`
	Language *string `json:"language,omitempty"`
}

type BatchSentimentRequest struct {
	Texts    []string `json:"texts"`
	Language *string  `json:"language,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}
