package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/lk16/flippy/reversi/internal/opponent"
)

const defaultSessionTTL = 24 * time.Hour

// ErrPreforkMemoryStore is returned when prefork is enabled without shared stores.
var ErrPreforkMemoryStore = errors.New("prefork requires REVERSI_REDIS_URL and REVERSI_POSTGRES_URL")

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string
	Token             string
	Prefork           bool
	SessionTTL        time.Duration
	DefaultDifficulty opponent.Difficulty
}

// LoadServerConfig loads configuration from environment variables.
// Redis and Postgres are optional, an empty URL selects the in-memory store.
func LoadServerConfig() *ServerConfig {
	cfg := &ServerConfig{
		ServerHost:        getEnvMust("REVERSI_SERVER_HOST"),
		ServerPort:        getEnvMust("REVERSI_SERVER_PORT"),
		RedisURL:          os.Getenv("REVERSI_REDIS_URL"),
		PostgresURL:       os.Getenv("REVERSI_POSTGRES_URL"),
		Token:             os.Getenv("REVERSI_TOKEN"),
		Prefork:           getEnvBool("REVERSI_PREFORK", false),
		SessionTTL:        getEnvDuration("REVERSI_SESSION_TTL", defaultSessionTTL),
		DefaultDifficulty: getEnvDifficulty("REVERSI_DEFAULT_DIFFICULTY", opponent.DefaultDifficulty),
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	return cfg
}

// Validate checks combinations of settings. Prefork children don't share in-memory stores.
func (cfg *ServerConfig) Validate() error {
	if cfg.Prefork && (cfg.RedisURL == "" || cfg.PostgresURL == "") {
		return ErrPreforkMemoryStore
	}
	return nil
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		slog.Error("Cannot load environment variable, it must be a positive duration", "key", key, "value", value)
		os.Exit(1)
	}

	return duration
}

func getEnvDifficulty(key string, fallback opponent.Difficulty) opponent.Difficulty {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	difficulty, err := opponent.ParseDifficulty(value)
	if err != nil {
		slog.Error("Cannot load environment variable", "key", key, "error", err)
		os.Exit(1)
	}

	return difficulty
}
