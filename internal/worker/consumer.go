package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"sentiserve/internal/models"
	"sentiserve/internal/queue"
	"sentiserve/internal/sentiment"
	"sentiserve/internal/utils"
)

const (
	batchSize    = 50
	batchTimeout = 5 * time.Second
)

// ResultStore persists scored batches. Nil-able; the worker runs fine with
// publishing only.
type ResultStore interface {
	BatchInsertResults(ctx context.Context, results []models.SentimentJobResult) error
}

// Worker consumes batched sentiment jobs, scores them through the service and
// fans results out to the results topic and the store.
type Worker struct {
	service  *sentiment.Service
	producer *queue.Producer
	consumer *kafka.Consumer
	store    ResultStore
	buffer   *utils.BatchBuffer[models.SentimentJob]
}

func New(service *sentiment.Service, consumer *kafka.Consumer, producer *queue.Producer, store ResultStore) *Worker {
	return &Worker{
		service:  service,
		producer: producer,
		consumer: consumer,
		store:    store,
		buffer:   utils.NewBatchBuffer[models.SentimentJob](batchSize),
	}
}

// Run blocks until ctx is cancelled, flushing any buffered jobs on the way
// out.
func (w *Worker) Run(ctx context.Context) error {
	iterator := queue.NewMessageIterator(ctx, w.consumer)
	committer := queue.NewCommitHandler(ctx, w.consumer)

	slog.Info("[Worker] Listening for sentiment jobs")

	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[Worker] Stopping consumer...")
			w.processBatch(context.Background(), committer)
			return nil
		case <-ticker.C:
			w.processBatch(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				slog.Error("[Worker] Consumer error", slog.String("error", err.Error()))
				continue
			}

			var jobs []models.SentimentJob
			if err := json.Unmarshal(msg.Value, &jobs); err != nil {
				slog.Warn("[Worker] Skipping undecodable message",
					slog.String("error", err.Error()))
				_ = committer.Commit(msg)
				continue
			}
			if len(jobs) == 0 {
				_ = committer.Commit(msg)
				continue
			}

			utils.TrackMessage(jobs[0].ContentID, msg)
			for _, job := range jobs {
				w.buffer.Add(job)
			}

			if w.buffer.Size() >= batchSize {
				w.processBatch(ctx, committer)
			}
		}
	}
}

func (w *Worker) processBatch(ctx context.Context, committer *queue.CommitHandler) {
	batch := w.buffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	slog.Info("[Worker] Processing batch", slog.Int("batch_size", len(batch)))

	texts := make([]string, len(batch))
	for i, job := range batch {
		texts[i] = job.Text
	}

	scored, err := w.service.AnalyzeBatch(ctx, texts, nil)
	if err != nil {
		// Offsets stay uncommitted so the batch is redelivered.
		slog.Error("[Worker] Batch analysis failed, batch will be redelivered",
			slog.String("error", err.Error()))
		return
	}

	results := make([]models.SentimentJobResult, len(batch))
	for i, job := range batch {
		scored[i].Language = job.Language
		results[i] = models.SentimentJobResult{
			ContentID:       job.ContentID,
			SentimentResult: scored[i],
		}
	}

	w.publishResults(results)

	if w.store != nil {
		if err := w.store.BatchInsertResults(ctx, results); err != nil {
			slog.Error("[Worker] Failed to store results",
				slog.String("error", err.Error()))
		}
	}

	for _, result := range results {
		trackedMsg, found := utils.GetMessageForJob(result.ContentID)
		if !found {
			continue
		}
		if err := committer.Commit(trackedMsg); err != nil {
			slog.Warn("[Worker] Failed to commit offset",
				slog.String("error", err.Error()))
		}
	}
}

func (w *Worker) publishResults(results []models.SentimentJobResult) {
	for i := 0; i < 3; i++ {
		err := w.producer.PublishJSON(queue.TopicSentimentResults, results[0].ContentID, results)
		if err == nil {
			slog.Info("[Worker] Results published", slog.Int("count", len(results)))
			return
		}
		slog.Warn("[Worker] Batch publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}
}
