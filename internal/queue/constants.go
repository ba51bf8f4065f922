package queue

import "time"

const (
	// Batched analysis jobs waiting for the worker.
	TopicSentimentRequest = "sentiment-request"
	// Scored batches published by the worker.
	TopicSentimentResults = "sentiment-results"
)

const (
	MaxRetries = 5
	RetryDelay = 2 * time.Second
)
