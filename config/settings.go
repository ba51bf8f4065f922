package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the fixed prefix for all sentiserve environment variables,
// e.g. SA_MODEL_NAME, SA_BATCH_SIZE.
const EnvPrefix = "SA_"

// Settings is the process-wide configuration. It is read once at start and
// treated as immutable afterwards.
type Settings struct {
	// Model / inference
	ModelName     string `koanf:"model_name"`
	ModelRevision string `koanf:"model_revision"`
	ModelDir      string `koanf:"model_dir"`
	Device        int    `koanf:"device"`
	PipelineTask  string `koanf:"pipeline_task"`
	MaxLength     int    `koanf:"max_length"`
	BatchSize     int    `koanf:"batch_size"`

	// Engine selection: hugot, vader or openai
	Engine      string `koanf:"engine"`
	OpenAIModel string `koanf:"openai_model"`

	// HTTP server
	ListenAddr string `koanf:"listen_addr"`

	// Valkey result cache; empty address disables caching
	ValkeyAddr     string `koanf:"valkey_addr"`
	ValkeyPassword string `koanf:"valkey_password"`
	ValkeyTLS      bool   `koanf:"valkey_tls"`

	// Kafka (batch worker)
	KafkaBroker  string `koanf:"kafka_broker"`
	KafkaGroupID string `koanf:"kafka_group_id"`

	// DynamoDB result store (batch worker)
	AWSRegion     string `koanf:"aws_region"`
	AWSEndpoint   string `koanf:"aws_endpoint"`
	ResultsTable  string `koanf:"results_table"`
	StoreDisabled bool   `koanf:"store_disabled"`

	// Logging
	LogLevel string `koanf:"log_level"`
}

func defaults() Settings {
	return Settings{
		ModelName:    "cardiffnlp/twitter-xlm-roberta-base-sentiment",
		ModelDir:     "./models",
		Device:       -1,
		PipelineTask: "text-classification",
		MaxLength:    512,
		BatchSize:    8,
		Engine:       "hugot",
		OpenAIModel:  "gpt-4o-mini",
		ListenAddr:   ":8080",
		KafkaBroker:  "localhost:29092",
		KafkaGroupID: "sentiserve-worker-group",
		AWSRegion:    "us-west-2",
		ResultsTable: "SentimentResults",
		LogLevel:     "info",
	}
}

// Load builds Settings from SA_-prefixed environment variables on top of the
// defaults.
func Load() (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Settings{}, fmt.Errorf("[Config] failed to read environment: %w", err)
	}

	settings := defaults()
	if err := k.Unmarshal("", &settings); err != nil {
		return Settings{}, fmt.Errorf("[Config] failed to unmarshal settings: %w", err)
	}

	if err := settings.validate(); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

func (s Settings) validate() error {
	switch s.Engine {
	case "hugot", "vader", "openai":
	default:
		return fmt.Errorf("[Config] unknown engine %q, expected hugot, vader or openai", s.Engine)
	}
	if s.BatchSize <= 0 {
		return fmt.Errorf("[Config] batch_size must be positive, got %d", s.BatchSize)
	}
	if s.MaxLength <= 0 {
		return fmt.Errorf("[Config] max_length must be positive, got %d", s.MaxLength)
	}
	return nil
}

// CacheEnabled reports whether a Valkey result cache should be wired in.
func (s Settings) CacheEnabled() bool {
	return s.ValkeyAddr != ""
}
