package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

type CommitHandler struct {
	consumer *kafka.Consumer
	ctx      context.Context
}

func NewCommitHandler(ctx context.Context, consumer *kafka.Consumer) *CommitHandler {
	return &CommitHandler{
		consumer: consumer,
		ctx:      ctx,
	}
}

func (ch *CommitHandler) Commit(msg *kafka.Message) error {
	if ch.consumer == nil {
		return errors.New("[Queue] consumer has not been initialized")
	}

	for i := 0; i < MaxRetries; i++ {
		select {
		case <-ch.ctx.Done():
			slog.Warn("[Queue] Context canceled, stopping commit")
			return ch.ctx.Err()
		default:
		}

		_, err := ch.consumer.CommitMessage(msg)
		if err == nil {
			slog.Debug("[Queue] Committed offset",
				slog.Int("partition", int(msg.TopicPartition.Partition)),
				slog.String("offset", msg.TopicPartition.Offset.String()))
			return nil
		}

		if kafkaErr, ok := err.(kafka.Error); ok && kafkaErr.Code() == kafka.ErrAllBrokersDown {
			slog.Error("[Queue] All Kafka brokers are down. Aborting commit")
			return err
		}

		slog.Warn("[Queue] Failed to commit offset, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()),
			slog.Int("partition", int(msg.TopicPartition.Partition)),
			slog.String("offset", msg.TopicPartition.Offset.String()))

		time.Sleep(RetryDelay)
	}

	return fmt.Errorf("[Queue] failed to commit message after %d retries", MaxRetries)
}
