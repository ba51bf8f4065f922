package queue

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"sentiserve/config"
)

type Producer struct {
	producer *kafka.Producer
}

func NewProducer(settings config.Settings) (*Producer, error) {
	slog.Info("[Queue] Initializing Kafka producer...",
		slog.String("broker", settings.KafkaBroker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  settings.KafkaBroker,
		"enable.idempotence": true,
		"acks":               "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[Queue] failed to create producer: %w", err)
	}

	slog.Info("[Queue] Kafka producer initialized successfully")
	return &Producer{producer: p}, nil
}

// PublishJSON serializes value and produces it to topic with the given key.
func (p *Producer) PublishJSON(topic string, key string, value any) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("[Queue] failed to serialize payload: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          jsonData,
	}

	for i := 0; i < 3; i++ {
		err = p.producer.Produce(msg, nil)
		if err == nil {
			return nil
		}
		slog.Warn("[Queue] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("topic", topic))
	}

	return fmt.Errorf("[Queue] failed to produce message to %s: %w", topic, err)
}

func (p *Producer) Close() {
	slog.Info("[Queue] Shutting down Kafka producer...")
	if remaining := p.producer.Flush(5000); remaining > 0 {
		slog.Warn("[Queue] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
}
