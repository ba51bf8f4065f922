package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"sentiserve/config"
	"sentiserve/internal/models"
)

const (
	maxBatchSize = 25 // DynamoDB BatchWriteItem limit
	resultTTL    = 24 * time.Hour
)

// Store persists scored sentiment batches to a DynamoDB table.
type Store struct {
	client *dynamodb.Client
	table  string
}

func New(ctx context.Context, settings config.Settings) (*Store, error) {
	slog.Info("[Store] Initializing DynamoDB client...",
		slog.String("region", settings.AWSRegion),
		slog.String("table", settings.ResultsTable))

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("[Store] failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if settings.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(settings.AWSEndpoint)
		}
	})

	return &Store{
		client: client,
		table:  settings.ResultsTable,
	}, nil
}

// BatchInsertResults writes all results in 25-item chunks, retrying
// unprocessed items with doubling backoff.
func (s *Store) BatchInsertResults(ctx context.Context, results []models.SentimentJobResult) error {
	for start := 0; start < len(results); start += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[Store] Context canceled while writing results")
			return ctx.Err()
		default:
		}

		end := start + maxBatchSize
		if end > len(results) {
			end = len(results)
		}

		writeRequests := make([]types.WriteRequest, 0, end-start)
		for _, result := range results[start:end] {
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: resultToItem(result)},
			})
		}

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.table: writeRequests,
			},
		})
		if err != nil {
			return fmt.Errorf("[Store] failed to batch write results: %w", err)
		}

		retryCount := 0
		backoff := 500 * time.Millisecond
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			time.Sleep(backoff)
			backoff *= 2

			slog.Warn("[Store] Retrying unprocessed result items...",
				slog.Int("attempt", retryCount+1),
				slog.Int("remaining", len(out.UnprocessedItems[s.table])))

			out, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[Store] failed to retry batch write: %w", err)
			}
			retryCount++
		}

		if len(out.UnprocessedItems) > 0 {
			slog.Error("[Store] Some result items were not written even after retries",
				slog.Int("remaining", len(out.UnprocessedItems[s.table])))
		}
	}

	slog.Info("[Store] Stored sentiment results", slog.Int("count", len(results)))
	return nil
}

// GetResults scans the table for every stored result, following pagination.
func (s *Store) GetResults(ctx context.Context) ([]models.SentimentJobResult, error) {
	var results []models.SentimentJobResult

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[Store] scan for results failed: %w", err)
		}

		var page []models.SentimentJobResult
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("[Store] failed to unmarshal result page: %w", err)
		}
		results = append(results, page...)
	}

	slog.Info("[Store] Retrieved sentiment results", slog.Int("count", len(results)))
	return results, nil
}

func resultToItem(result models.SentimentJobResult) map[string]types.AttributeValue {
	now := time.Now()

	item := map[string]types.AttributeValue{
		"content_id": &types.AttributeValueMemberS{Value: result.ContentID},
		"label":      &types.AttributeValueMemberS{Value: result.Label},
		"score":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", result.Score)},
		"model":      &types.AttributeValueMemberS{Value: result.Model},
		"created_at": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Unix())},
		"ttl":        &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Add(resultTTL).Unix())},
	}

	if result.Language != nil && *result.Language != "" {
		item["language"] = &types.AttributeValueMemberS{Value: *result.Language}
	}

	return item
}
