package config

import (
	"os"
	"strconv"

	"goquade/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Test     TestConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	APIPort string
	UIPort  string
	GinMode string
}

// DatabaseConfig holds the optional run-archive database settings.
// An empty URL means the archive is disabled and runs are not persisted.
type DatabaseConfig struct {
	URL string
}

// TestConfig holds defaults for test execution
type TestConfig struct {
	DefaultAlpha   float64
	MaxConcurrency int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			APIPort: getEnv("API_PORT", "8080"),
			UIPort:  getEnv("UI_PORT", "8081"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	alpha, err := getEnvFloat("DEFAULT_ALPHA", 0.05)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load test configuration")
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.ConfigInvalid("DEFAULT_ALPHA must be in (0, 1)")
	}
	config.Test.DefaultAlpha = alpha

	maxConc, err := getEnvInt64("MAX_CONCURRENCY", 4)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load test configuration")
	}
	if maxConc < 1 {
		return nil, errors.ConfigInvalid("MAX_CONCURRENCY must be at least 1")
	}
	config.Test.MaxConcurrency = maxConc

	return config, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " is not a valid number")
	}
	return f, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " is not a valid integer")
	}
	return n, nil
}
