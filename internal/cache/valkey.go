package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"sentiserve/config"
	"sentiserve/internal/sentiment"
)

const (
	resultTTLSeconds = 86400 // cached predictions expire after a day
	maxRetries       = 3
	retryDelay       = 250 * time.Millisecond
)

// ValkeyCache stores serialized predictions in Valkey. Every failure is
// reported as a miss; the serving path never depends on the cache being up.
type ValkeyCache struct {
	client valkey.Client
}

func NewValkeyCache(settings config.Settings) (*ValkeyCache, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{settings.ValkeyAddr},
		Password:         settings.ValkeyPassword,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if settings.ValkeyTLS {
		opts.TLSConfig = &tls.Config{}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyCache] failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyCache] failed to ping valkey: %w", err)
	}

	slog.Info("[ValkeyCache] Connected", slog.String("addr", settings.ValkeyAddr))

	return &ValkeyCache{client: client}, nil
}

func (c *ValkeyCache) Get(ctx context.Context, key string) (sentiment.Prediction, bool) {
	res := c.doWithRetry(ctx, c.client.B().Get().Key(key).Build())
	if res.Error() != nil {
		return sentiment.Prediction{}, false
	}

	raw, err := res.AsBytes()
	if err != nil {
		return sentiment.Prediction{}, false
	}

	var prediction sentiment.Prediction
	if err := json.Unmarshal(raw, &prediction); err != nil {
		slog.Warn("[ValkeyCache] Dropping unreadable cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return sentiment.Prediction{}, false
	}

	return prediction, true
}

func (c *ValkeyCache) Put(ctx context.Context, key string, prediction sentiment.Prediction) {
	raw, err := json.Marshal(prediction)
	if err != nil {
		slog.Warn("[ValkeyCache] Failed to serialize prediction",
			slog.String("error", err.Error()))
		return
	}

	completed := []valkey.Completed{
		c.client.B().Set().Key(key).Value(string(raw)).Build(),
		c.client.B().Expire().Key(key).Seconds(resultTTLSeconds).Build(),
	}
	for _, res := range c.client.DoMulti(ctx, completed...) {
		if res.Error() != nil {
			slog.Warn("[ValkeyCache] Failed to store prediction",
				slog.String("key", key),
				slog.String("error", res.Error().Error()))
			return
		}
	}
}

func (c *ValkeyCache) Close() {
	c.client.Close()
}

func (c *ValkeyCache) doWithRetry(ctx context.Context, completed valkey.Completed) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < maxRetries; i++ {
		result = c.client.Do(ctx, completed)
		if result.Error() == nil || !isConnectionError(result.Error()) {
			break
		}

		slog.Warn("[ValkeyCache] Command failed, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))
		time.Sleep(retryDelay)
	}
	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
