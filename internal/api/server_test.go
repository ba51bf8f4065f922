package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiserve/internal/models"
)

type fakeAnalyzer struct {
	err error
}

func (f *fakeAnalyzer) ModelName() string { return "fake-model" }

func (f *fakeAnalyzer) AnalyzeText(_ context.Context, text string, language *string) (models.SentimentResult, error) {
	if f.err != nil {
		return models.SentimentResult{}, f.err
	}
	return models.SentimentResult{
		Label:    "positive",
		Score:    0.99,
		Model:    f.ModelName(),
		Language: language,
	}, nil
}

func (f *fakeAnalyzer) AnalyzeBatch(ctx context.Context, texts []string, language *string) ([]models.SentimentResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	results := make([]models.SentimentResult, len(texts))
	for i := range texts {
		results[i], _ = f.AnalyzeText(ctx, texts[i], language)
	}
	return results, nil
}

func doRequest(t *testing.T, analyzer Analyzer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	server := NewServer(analyzer)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(t, &fakeAnalyzer{}, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "fake-model", body.Model)
}

func TestSentimentSingle(t *testing.T) {
	rec := doRequest(t, &fakeAnalyzer{}, http.MethodPost, "/sentiment",
		`{"text":"hello","language":"en"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.SentimentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "positive", body.Label)
	assert.Equal(t, 0.99, body.Score)
	assert.Equal(t, "fake-model", body.Model)
	require.NotNil(t, body.Language)
	assert.Equal(t, "en", *body.Language)
}

func TestSentimentMissingText(t *testing.T) {
	rec := doRequest(t, &fakeAnalyzer{}, http.MethodPost, "/sentiment", `{"language":"en"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSentimentMalformedJSON(t *testing.T) {
	rec := doRequest(t, &fakeAnalyzer{}, http.MethodPost, "/sentiment", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSentimentEngineFailure(t *testing.T) {
	rec := doRequest(t, &fakeAnalyzer{err: errors.New("model exploded")},
		http.MethodPost, "/sentiment", `{"text":"hello"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "model exploded")
}

func TestSentimentBatch(t *testing.T) {
	rec := doRequest(t, &fakeAnalyzer{}, http.MethodPost, "/sentiment/batch",
		`{"texts":["hi","hola"],"language":"es"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []models.SentimentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	for _, item := range body {
		assert.Equal(t, "positive", item.Label)
		require.NotNil(t, item.Language)
		assert.Equal(t, "es", *item.Language)
	}
}

func TestSentimentBatchEmpty(t *testing.T) {
	rec := doRequest(t, &fakeAnalyzer{}, http.MethodPost, "/sentiment/batch", `{"texts":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSentimentBatchFailureIsAllOrNothing(t *testing.T) {
	rec := doRequest(t, &fakeAnalyzer{err: errors.New("boom")},
		http.MethodPost, "/sentiment/batch", `{"texts":["a","b"]}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"label"`)
}
