package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/stretchr/testify/require"
)

func result(id, session, difficulty, outcome string, finishedAt time.Time) models.GameResult {
	return models.GameResult{
		ID:         id,
		SessionID:  session,
		Difficulty: difficulty,
		Outcome:    outcome,
		FirstMover: "black",
		Black:      40,
		White:      24,
		MoveCount:  60,
		Moves:      []string{"d3", "c5"},
		FinishedAt: finishedAt,
	}
}

func TestMemoryResultStore_Stats(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore()
	now := time.Now()

	require.NoError(t, store.Record(ctx, result("1", "s1", "medium", "win", now)))
	require.NoError(t, store.Record(ctx, result("2", "s1", "medium", "loss", now)))
	require.NoError(t, store.Record(ctx, result("3", "s2", "hard", "loss", now)))
	require.NoError(t, store.Record(ctx, result("4", "s2", "easy", "draw", now)))

	// Recording twice is a no-op.
	require.NoError(t, store.Record(ctx, result("1", "s1", "medium", "win", now)))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.DifficultyStats{
		{Difficulty: "easy", Games: 1, Draws: 1},
		{Difficulty: "hard", Games: 1, CPUWins: 1},
		{Difficulty: "medium", Games: 2, PlayerWins: 1, CPUWins: 1},
	}, stats)
}

func TestMemoryResultStore_Recent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore()
	now := time.Now()

	require.NoError(t, store.Record(ctx, result("1", "s1", "medium", "win", now)))
	require.NoError(t, store.Record(ctx, result("2", "s2", "medium", "loss", now)))
	require.NoError(t, store.Record(ctx, result("3", "s1", "hard", "draw", now)))
	require.NoError(t, store.Record(ctx, result("4", "s1", "hard", "loss", now)))

	recent, err := store.Recent(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "4", recent[0].ID)
	require.Equal(t, "3", recent[1].ID)

	recent, err = store.Recent(ctx, "unknown", 5)
	require.NoError(t, err)
	require.Empty(t, recent)
}

func TestMemoryResultStore_Empty(t *testing.T) {
	stats, err := NewMemoryResultStore().Stats(context.Background())
	require.NoError(t, err)
	require.Empty(t, stats)
}

func TestMemoryResultStore_RecordDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore()
	now := time.Now()

	for i := range 500 {
		require.NoError(t, store.Record(ctx, result(fmt.Sprintf("%d", i), "s1", "easy", "win", now)))
	}

	// The first recording wins, even when the duplicate differs.
	require.NoError(t, store.Record(ctx, result("7", "s1", "hard", "loss", now)))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.DifficultyStats{
		{Difficulty: "easy", Games: 500, PlayerWins: 500},
	}, stats)
}
