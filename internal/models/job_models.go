package models

// SentimentJob is one queued analysis request consumed by the batch worker.
// Jobs arrive on the request topic as JSON arrays.
type SentimentJob struct {
	ContentID string  `json:"content_id"`
	Text      string  `json:"text"`
	Language  *string `json:"language,omitempty"`
}

type SentimentJobResult struct {
	ContentID string `json:"content_id"`
	SentimentResult
}
