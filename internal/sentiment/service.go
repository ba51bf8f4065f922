package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"sentiserve/config"
	"sentiserve/internal/models"
)

// ResultCache caches classifier predictions keyed by CacheKey. Implementations
// must degrade to a miss on failure; a cache problem never fails a request.
type ResultCache interface {
	Get(ctx context.Context, key string) (Prediction, bool)
	Put(ctx context.Context, key string, prediction Prediction)
}

// CacheKey builds a stable cache key for one text under one engine and model.
func CacheKey(engine, model, text string) string {
	sum := sha256.Sum256([]byte(engine + "|" + model + "|" + text))
	return "sentiment:result:" + hex.EncodeToString(sum[:])
}

// Service fronts an Engine with preprocessing, batching, caching and label
// normalization. Safe for concurrent use: all fields are set at construction
// and read-only afterwards.
type Service struct {
	engine   Engine
	cache    ResultCache
	settings config.Settings
}

type ServiceOption func(*Service)

// WithCache wires a prediction cache into the service.
func WithCache(cache ResultCache) ServiceOption {
	return func(s *Service) {
		s.cache = cache
	}
}

func NewService(engine Engine, settings config.Settings, opts ...ServiceOption) *Service {
	if settings.BatchSize <= 0 {
		settings.BatchSize = 1
	}
	s := &Service{
		engine:   engine,
		settings: settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ModelName returns the configured model identifier echoed in results and on
// the health endpoint.
func (s *Service) ModelName() string {
	return s.settings.ModelName
}

// AnalyzeText scores one text.
func (s *Service) AnalyzeText(ctx context.Context, text string, language *string) (models.SentimentResult, error) {
	results, err := s.AnalyzeBatch(ctx, []string{text}, language)
	if err != nil {
		return models.SentimentResult{}, err
	}
	return results[0], nil
}

// AnalyzeBatch scores every text, preserving input order. Any engine failure
// fails the whole batch; there are no partial results.
func (s *Service) AnalyzeBatch(ctx context.Context, texts []string, language *string) ([]models.SentimentResult, error) {
	predictions := make([]Prediction, len(texts))
	prepared := make([]string, len(texts))

	// Cache lookups first so only misses hit the engine.
	var missIdx []int
	for i, text := range texts {
		prepared[i] = truncateWords(ConvertMarkdownToText(text), s.settings.MaxLength)

		if s.cache != nil {
			if cached, ok := s.cache.Get(ctx, s.cacheKey(prepared[i])); ok {
				predictions[i] = cached
				continue
			}
		}
		missIdx = append(missIdx, i)
	}

	for start := 0; start < len(missIdx); start += s.settings.BatchSize {
		end := start + s.settings.BatchSize
		if end > len(missIdx) {
			end = len(missIdx)
		}
		chunk := missIdx[start:end]

		chunkTexts := make([]string, len(chunk))
		for i, idx := range chunk {
			chunkTexts[i] = prepared[idx]
		}

		chunkPredictions, err := s.engine.Classify(ctx, chunkTexts)
		if err != nil {
			return nil, fmt.Errorf("[SentimentService] analysis failed: %w", err)
		}
		if len(chunkPredictions) != len(chunk) {
			return nil, fmt.Errorf("[SentimentService] engine returned %d predictions for %d inputs",
				len(chunkPredictions), len(chunk))
		}

		for i, idx := range chunk {
			predictions[idx] = chunkPredictions[i]
			if s.cache != nil {
				s.cache.Put(ctx, s.cacheKey(prepared[idx]), chunkPredictions[i])
			}
		}
	}

	results := make([]models.SentimentResult, len(texts))
	for i, prediction := range predictions {
		results[i] = models.SentimentResult{
			Label:    Normalize(prediction.Label),
			Score:    prediction.Score,
			Model:    s.settings.ModelName,
			Language: language,
		}
	}

	return results, nil
}

func (s *Service) cacheKey(text string) string {
	return CacheKey(s.engine.Name(), s.settings.ModelName, text)
}
