package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/lk16/flippy/reversi/internal/game"
	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func requireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("REVERSI_INTEGRATION_TESTS") == "" {
		t.Skip("REVERSI_INTEGRATION_TESTS is not set")
	}
}

func startContainer(t *testing.T, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	return container
}

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	})

	endpoint, err := container.PortEndpoint(ctx, "6379/tcp", "redis")
	require.NoError(t, err)

	opts, err := redis.ParseURL(endpoint)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	require.NoError(t, client.Ping(ctx).Err())

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	container := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:latest",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "pg-test-user",
			"POSTGRES_PASSWORD": "pg-test-password",
			"POSTGRES_DB":       "pg-test-db",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://pg-test-user:pg-test-password@%s:%s/pg-test-db?sslmode=disable", host, port.Port())

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestRedisSessionStore(t *testing.T) {
	requireIntegration(t)
	ctx := context.Background()

	store := NewRedisSessionStore(startRedis(t), time.Hour)

	id, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)

	session, err := store.Update(ctx, id, func(s *game.Session) error {
		_, err := s.SubmitMove(2, 3)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, session.MoveCount())

	session, err = store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, session.MoveCount())
	require.Equal(t, game.Computer, session.Turn())

	_, err = store.Get(ctx, uuid.New().String())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Update(ctx, uuid.New().String(), func(*game.Session) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisSessionStore_ConcurrentUpdates(t *testing.T) {
	requireIntegration(t)
	ctx := context.Background()

	store := NewRedisSessionStore(startRedis(t), time.Hour)

	id, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mutex sync.Mutex
	succeeded := 0

	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, id, func(s *game.Session) error {
				_, err := s.SubmitMove(2, 3)
				return err
			})
			if err == nil {
				mutex.Lock()
				succeeded++
				mutex.Unlock()
			}
		}()
	}

	wg.Wait()
	require.Equal(t, 1, succeeded)

	session, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, session.MoveCount())
}

func TestPostgresResultStore(t *testing.T) {
	requireIntegration(t)
	ctx := context.Background()

	store := NewPostgresResultStore(startPostgres(t))
	require.NoError(t, store.EnsureSchema(ctx))

	// Running it twice is fine.
	require.NoError(t, store.EnsureSchema(ctx))

	now := time.Now().UTC().Truncate(time.Millisecond)
	first := result(uuid.New().String(), "s1", "medium", "win", now.Add(-time.Minute))
	second := result(uuid.New().String(), "s1", "hard", "loss", now)

	require.NoError(t, store.Record(ctx, first))
	require.NoError(t, store.Record(ctx, second))
	require.NoError(t, store.Record(ctx, first))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.DifficultyStats{
		{Difficulty: "hard", Games: 1, CPUWins: 1},
		{Difficulty: "medium", Games: 1, PlayerWins: 1},
	}, stats)

	recent, err := store.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, second.ID, recent[0].ID)
	require.Equal(t, []string{"d3", "c5"}, recent[0].Moves)
	require.True(t, now.Equal(recent[0].FinishedAt))
}
