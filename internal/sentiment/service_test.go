package sentiment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiserve/config"
)

type stubEngine struct {
	label   string
	score   float64
	err     error
	calls   [][]string
	perText map[string]Prediction
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Classify(_ context.Context, texts []string) ([]Prediction, error) {
	s.calls = append(s.calls, texts)
	if s.err != nil {
		return nil, s.err
	}
	predictions := make([]Prediction, len(texts))
	for i, text := range texts {
		if p, ok := s.perText[text]; ok {
			predictions[i] = p
			continue
		}
		predictions[i] = Prediction{Label: s.label, Score: s.score}
	}
	return predictions, nil
}

type mapCache struct {
	entries map[string]Prediction
	puts    int
}

func (m *mapCache) Get(_ context.Context, key string) (Prediction, bool) {
	p, ok := m.entries[key]
	return p, ok
}

func (m *mapCache) Put(_ context.Context, key string, p Prediction) {
	m.entries[key] = p
	m.puts++
}

func testSettings() config.Settings {
	return config.Settings{
		ModelName: "test-model",
		MaxLength: 512,
		BatchSize: 2,
	}
}

func TestAnalyzeTextNormalizesAndTags(t *testing.T) {
	lang := "en"
	engine := &stubEngine{label: "4 stars", score: 0.87}
	svc := NewService(engine, testSettings())

	result, err := svc.AnalyzeText(context.Background(), "loved it", &lang)
	require.NoError(t, err)

	assert.Equal(t, "positive", result.Label)
	assert.Equal(t, 0.87, result.Score)
	assert.Equal(t, "test-model", result.Model)
	require.NotNil(t, result.Language)
	assert.Equal(t, "en", *result.Language)
}

func TestAnalyzeBatchPreservesOrderAndLength(t *testing.T) {
	engine := &stubEngine{
		perText: map[string]Prediction{
			"good": {Label: "positive", Score: 0.9},
			"bad":  {Label: "negative", Score: 0.8},
			"meh":  {Label: "3 stars", Score: 0.5},
		},
	}
	svc := NewService(engine, testSettings())

	results, err := svc.AnalyzeBatch(context.Background(), []string{"good", "bad", "meh"}, nil)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "positive", results[0].Label)
	assert.Equal(t, "negative", results[1].Label)
	assert.Equal(t, "neutral", results[2].Label)
	for _, result := range results {
		assert.Nil(t, result.Language)
	}
}

func TestAnalyzeBatchChunksToBatchSize(t *testing.T) {
	engine := &stubEngine{label: "positive", score: 0.9}
	svc := NewService(engine, testSettings())

	_, err := svc.AnalyzeBatch(context.Background(), []string{"a", "b", "c", "d", "e"}, nil)
	require.NoError(t, err)

	// BatchSize is 2: expect chunks of 2, 2, 1.
	require.Len(t, engine.calls, 3)
	assert.Len(t, engine.calls[0], 2)
	assert.Len(t, engine.calls[1], 2)
	assert.Len(t, engine.calls[2], 1)
}

func TestAnalyzeBatchAllOrNothing(t *testing.T) {
	engine := &stubEngine{err: errors.New("model exploded")}
	svc := NewService(engine, testSettings())

	results, err := svc.AnalyzeBatch(context.Background(), []string{"a", "b"}, nil)
	assert.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "model exploded")
}

func TestAnalyzeBatchUsesCache(t *testing.T) {
	engine := &stubEngine{label: "positive", score: 0.9}
	cache := &mapCache{entries: map[string]Prediction{}}
	svc := NewService(engine, testSettings(), WithCache(cache))

	_, err := svc.AnalyzeBatch(context.Background(), []string{"hello"}, nil)
	require.NoError(t, err)
	assert.Len(t, engine.calls, 1)
	assert.Equal(t, 1, cache.puts)

	// Second run is served from cache.
	results, err := svc.AnalyzeBatch(context.Background(), []string{"hello"}, nil)
	require.NoError(t, err)
	assert.Len(t, engine.calls, 1)
	assert.Equal(t, "positive", results[0].Label)
}

func TestAnalyzeBatchTruncatesLongInput(t *testing.T) {
	settings := testSettings()
	settings.MaxLength = 3

	engine := &stubEngine{label: "neutral", score: 0.5}
	svc := NewService(engine, settings)

	_, err := svc.AnalyzeBatch(context.Background(), []string{"one two three four five"}, nil)
	require.NoError(t, err)

	require.Len(t, engine.calls, 1)
	assert.Equal(t, 3, len(strings.Fields(engine.calls[0][0])))
}

func TestCacheKeyDistinguishesInputs(t *testing.T) {
	assert.NotEqual(t, CacheKey("hugot", "m", "a"), CacheKey("hugot", "m", "b"))
	assert.NotEqual(t, CacheKey("hugot", "m", "a"), CacheKey("vader", "m", "a"))
	assert.Equal(t, CacheKey("hugot", "m", "a"), CacheKey("hugot", "m", "a"))
}
