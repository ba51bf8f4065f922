package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var messageMap sync.Map

// TrackMessage remembers which Kafka message a job arrived in so its offset
// can be committed once the job's batch is fully processed.
func TrackMessage(contentID string, msg *kafka.Message) {
	messageMap.Store(contentID, msg)
}

// GetMessageForJob pops the tracked message for a content ID.
func GetMessageForJob(contentID string) (*kafka.Message, bool) {
	msg, ok := messageMap.Load(contentID)
	if !ok {
		return nil, false
	}
	messageMap.Delete(contentID)
	return msg.(*kafka.Message), true
}
