package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings. Environment variables are parsed
// from the CINEMATCH_ prefix.
type Config struct {
	Port int `envconfig:"PORT" default:"8080"`

	DBType string `envconfig:"DB_TYPE" default:"sqlite"`
	DBPath string `envconfig:"DB_PATH" default:"./cinematch.db"`
	DBDSN  string `envconfig:"DB_DSN" default:""`

	OpenAIAPIKey  string        `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIModel   string        `envconfig:"OPENAI_MODEL" default:"gpt-4o"`
	OpenAIBaseURL string        `envconfig:"OPENAI_BASE_URL" default:""`
	LLMTimeout    time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`

	TMDBAPIKey string `envconfig:"TMDB_API_KEY" default:""`

	MetricsNamespace string `envconfig:"METRICS_NAMESPACE" default:"cinematch"`
}

// Load reads environment variables and validates cross-field rules.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("CINEMATCH", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.DBType {
	case "sqlite":
	case "postgres":
		if cfg.DBDSN == "" {
			return Config{}, fmt.Errorf("CINEMATCH_DB_DSN is required when CINEMATCH_DB_TYPE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unsupported CINEMATCH_DB_TYPE: %s", cfg.DBType)
	}

	return cfg, nil
}
