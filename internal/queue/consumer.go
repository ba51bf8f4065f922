package queue

import (
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"sentiserve/config"
)

// NewConsumer creates a consumer subscribed to the sentiment request topic.
// Offsets are committed manually after a batch is fully processed.
func NewConsumer(settings config.Settings) (*kafka.Consumer, error) {
	slog.Info("[Queue] Initializing Kafka consumer...",
		slog.String("broker", settings.KafkaBroker),
		slog.String("group_id", settings.KafkaGroupID),
		slog.String("topic", TopicSentimentRequest))

	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  settings.KafkaBroker,
		"group.id":           settings.KafkaGroupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	})
	if err != nil {
		return nil, fmt.Errorf("[Queue] failed to create consumer: %w", err)
	}

	if err := c.SubscribeTopics([]string{TopicSentimentRequest}, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("[Queue] failed to subscribe: %w", err)
	}

	slog.Info("[Queue] Kafka consumer initialized successfully")
	return c, nil
}
