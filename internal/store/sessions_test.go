package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lk16/flippy/reversi/internal/game"
	"github.com/lk16/flippy/reversi/internal/opponent"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *game.Session {
	t.Helper()
	session, err := game.NewSession(opponent.Medium)
	require.NoError(t, err)
	return session
}

func TestMemorySessionStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)

	id, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	session, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, game.AwaitingFirstMove, session.State())
	require.Equal(t, opponent.Medium, session.Difficulty())

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySessionStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)

	id, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)

	updated, err := store.Update(ctx, id, func(s *game.Session) error {
		_, err := s.SubmitMove(2, 3)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, updated.MoveCount())

	session, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, session.MoveCount())
	require.Equal(t, game.Computer, session.Turn())
}

func TestMemorySessionStore_UpdateErrorKeepsSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)

	id, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)

	failure := errors.New("failure")
	_, err = store.Update(ctx, id, func(s *game.Session) error {
		_, err := s.SubmitMove(2, 3)
		require.NoError(t, err)
		return failure
	})
	require.ErrorIs(t, err, failure)

	session, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 0, session.MoveCount())

	_, err = store.Update(ctx, "missing", func(*game.Session) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySessionStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)

	id, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)

	session, err := store.Get(ctx, id)
	require.NoError(t, err)
	_, err = session.SubmitMove(2, 3)
	require.NoError(t, err)

	stored, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 0, stored.MoveCount())
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	id, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = store.Get(ctx, id)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, store.Len())
}

func TestMemorySessionStore_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(0)

	id, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 10)

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, id, func(s *game.Session) error {
				_, err := s.SubmitMove(2, 3)
				return err
			})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}

	require.Equal(t, 1, succeeded)

	session, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, session.MoveCount())
}

func TestMemorySessionStore_CreateRemovesExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for range 100 {
		_, err := store.Create(ctx, newSession(t))
		require.NoError(t, err)
	}
	require.Equal(t, 100, store.Len())

	now = now.Add(time.Hour)

	id, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, id)
	require.NoError(t, err)
}

func TestMemorySessionStore_CreateKeepsLiveSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	old, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	recent, err := store.Create(ctx, newSession(t))
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = store.Create(ctx, newSession(t))
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	_, err = store.Get(ctx, old)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, recent)
	require.NoError(t, err)
}
