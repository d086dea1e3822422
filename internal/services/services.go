package services

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/flippy/reversi/internal/config"
	"github.com/lk16/flippy/reversi/internal/store"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services and the stores built on them.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
	Sessions store.SessionStore
	Results  store.ResultStore
}

// InitServices connects to Redis and Postgres when they are configured and falls back to
// in-memory stores otherwise.
func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := &Services{}

	if cfg.RedisURL != "" {
		redis, err := InitRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		services.Redis = redis
		services.Sessions = store.NewRedisSessionStore(redis, cfg.SessionTTL)
	} else {
		slog.Warn("No Redis configured, sessions are kept in memory")
		services.Sessions = store.NewMemorySessionStore(cfg.SessionTTL)
	}

	if cfg.PostgresURL != "" {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}

		results := store.NewPostgresResultStore(postgres)
		if err = results.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}

		services.Postgres = postgres
		services.Results = results
	} else {
		slog.Warn("No Postgres configured, game results are kept in memory")
		services.Results = store.NewMemoryResultStore()
	}

	return services, nil
}

// NewMemoryServices returns services backed only by in-memory stores.
func NewMemoryServices(cfg *config.ServerConfig) *Services {
	return &Services{
		Sessions: store.NewMemorySessionStore(cfg.SessionTTL),
		Results:  store.NewMemoryResultStore(),
	}
}

// Close closes the external connections.
func (s *Services) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}

	if s.Postgres != nil {
		if err := s.Postgres.Close(); err != nil {
			slog.Error("Failed to close Postgres connection", "error", err)
		}
	}
}
