package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cardiffnlp/twitter-xlm-roberta-base-sentiment", settings.ModelName)
	assert.Equal(t, -1, settings.Device)
	assert.Equal(t, 512, settings.MaxLength)
	assert.Equal(t, 8, settings.BatchSize)
	assert.Equal(t, "hugot", settings.Engine)
	assert.False(t, settings.CacheEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SA_MODEL_NAME", "nlptown/bert-base-multilingual-uncased-sentiment")
	t.Setenv("SA_BATCH_SIZE", "32")
	t.Setenv("SA_ENGINE", "vader")
	t.Setenv("SA_VALKEY_ADDR", "localhost:6379")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "nlptown/bert-base-multilingual-uncased-sentiment", settings.ModelName)
	assert.Equal(t, 32, settings.BatchSize)
	assert.Equal(t, "vader", settings.Engine)
	assert.True(t, settings.CacheEnabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown engine", key: "SA_ENGINE", value: "bert"},
		{name: "zero batch size", key: "SA_BATCH_SIZE", value: "0"},
		{name: "negative max length", key: "SA_MAX_LENGTH", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
