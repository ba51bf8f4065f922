package queue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// MessageIterator pulls messages off a consumer with bounded retries. Idle
// polls are not failures; a full broker outage aborts instead of spinning.
type MessageIterator struct {
	consumer *kafka.Consumer
	ctx      context.Context
}

func NewMessageIterator(ctx context.Context, consumer *kafka.Consumer) *MessageIterator {
	return &MessageIterator{
		consumer: consumer,
		ctx:      ctx,
	}
}

func (it *MessageIterator) Next() (*kafka.Message, error) {
	if it.consumer == nil {
		return nil, errors.New("[Queue] consumer has not been initialized")
	}

	attempts := 0
	for {
		select {
		case <-it.ctx.Done():
			slog.Warn("[Queue] Context cancelled, stopping iterator")
			return nil, it.ctx.Err()
		default:
		}

		msg, err := it.consumer.ReadMessage(time.Second)
		if err == nil {
			return msg, nil
		}

		if kafkaErr, ok := err.(kafka.Error); ok {
			if kafkaErr.Code() == kafka.ErrTimedOut {
				continue
			}
			if kafkaErr.Code() == kafka.ErrAllBrokersDown {
				slog.Error("[Queue] All Kafka brokers are down. Aborting")
				return nil, err
			}
		}

		attempts++
		if attempts >= MaxRetries {
			return nil, errors.New("[Queue] failed to read message after retries")
		}

		slog.Warn("[Queue] Failed to read message, retrying...",
			slog.Int("attempt", attempts),
			slog.Int("max_retries", MaxRetries),
			slog.String("error", err.Error()))
		time.Sleep(RetryDelay)
	}
}
