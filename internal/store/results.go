package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/lk16/flippy/reversi/internal/models"
)

// ResultStore records finished games.
type ResultStore interface {
	// Record stores a finished game.
	Record(ctx context.Context, result models.GameResult) error

	// Stats aggregates results per difficulty, ordered by difficulty name.
	Stats(ctx context.Context) ([]models.DifficultyStats, error)

	// Recent returns up to limit results of a session, newest first.
	Recent(ctx context.Context, sessionID string, limit int) ([]models.GameResult, error)
}

const resultsSchema = `
CREATE TABLE IF NOT EXISTS game_results (
	id          UUID PRIMARY KEY,
	session_id  TEXT NOT NULL,
	difficulty  TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	first_mover TEXT NOT NULL,
	black       INTEGER NOT NULL,
	white       INTEGER NOT NULL,
	move_count  INTEGER NOT NULL,
	moves       TEXT[] NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS game_results_session_id ON game_results (session_id, finished_at DESC);
`

// PostgresResultStore stores results in the game_results table.
type PostgresResultStore struct {
	db *sqlx.DB
}

// NewPostgresResultStore creates a PostgresResultStore.
func NewPostgresResultStore(db *sqlx.DB) *PostgresResultStore {
	return &PostgresResultStore{db: db}
}

// EnsureSchema creates the table if it doesn't exist yet.
func (s *PostgresResultStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, resultsSchema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

// Record stores a finished game.
func (s *PostgresResultStore) Record(ctx context.Context, result models.GameResult) error {
	query := `
		INSERT INTO game_results
			(id, session_id, difficulty, outcome, first_mover, black, white, move_count, moves, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	moves := result.Moves
	if moves == nil {
		moves = []string{}
	}

	_, err := s.db.ExecContext(ctx, query,
		result.ID,
		result.SessionID,
		result.Difficulty,
		result.Outcome,
		result.FirstMover,
		result.Black,
		result.White,
		result.MoveCount,
		pq.Array(moves),
		result.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting result: %w", err)
	}

	return nil
}

// Stats aggregates results per difficulty.
func (s *PostgresResultStore) Stats(ctx context.Context) ([]models.DifficultyStats, error) {
	query := `
		SELECT
			difficulty,
			COUNT(*) AS games,
			COUNT(*) FILTER (WHERE outcome = 'win') AS player_wins,
			COUNT(*) FILTER (WHERE outcome = 'loss') AS cpu_wins,
			COUNT(*) FILTER (WHERE outcome = 'draw') AS draws
		FROM game_results
		GROUP BY difficulty
		ORDER BY difficulty
	`

	stats := make([]models.DifficultyStats, 0)
	if err := s.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("error querying stats: %w", err)
	}

	return stats, nil
}

// Recent returns the latest results of a session.
func (s *PostgresResultStore) Recent(ctx context.Context, sessionID string, limit int) ([]models.GameResult, error) {
	query := `
		SELECT id, session_id, difficulty, outcome, first_mover, black, white, move_count, moves, finished_at
		FROM game_results
		WHERE session_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryxContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying results: %w", err)
	}
	defer rows.Close()

	results := make([]models.GameResult, 0)
	for rows.Next() {
		var result models.GameResult
		var moves pq.StringArray

		err = rows.Scan(
			&result.ID,
			&result.SessionID,
			&result.Difficulty,
			&result.Outcome,
			&result.FirstMover,
			&result.Black,
			&result.White,
			&result.MoveCount,
			&moves,
			&result.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning result: %w", err)
		}

		result.Moves = []string(moves)
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return results, nil
}

// MemoryResultStore keeps results in process memory.
type MemoryResultStore struct {
	results []models.GameResult

	// ids holds the ID of every entry in results
	ids map[string]struct{}

	mutex sync.Mutex
}

// NewMemoryResultStore creates an empty MemoryResultStore.
func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{
		results: make([]models.GameResult, 0),
		ids:     make(map[string]struct{}),
	}
}

// Record stores a finished game. Recording the same ID twice is a no-op.
func (s *MemoryResultStore) Record(_ context.Context, result models.GameResult) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.ids[result.ID]; ok {
		return nil
	}

	s.ids[result.ID] = struct{}{}
	result.Moves = slices.Clone(result.Moves)
	s.results = append(s.results, result)
	return nil
}

// Stats aggregates results per difficulty.
func (s *MemoryResultStore) Stats(_ context.Context) ([]models.DifficultyStats, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	byDifficulty := make(map[string]*models.DifficultyStats)
	for _, result := range s.results {
		stats, ok := byDifficulty[result.Difficulty]
		if !ok {
			stats = &models.DifficultyStats{Difficulty: result.Difficulty}
			byDifficulty[result.Difficulty] = stats
		}

		stats.Games++
		switch result.Outcome {
		case "win":
			stats.PlayerWins++
		case "loss":
			stats.CPUWins++
		case "draw":
			stats.Draws++
		}
	}

	stats := make([]models.DifficultyStats, 0, len(byDifficulty))
	for _, entry := range byDifficulty {
		stats = append(stats, *entry)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Difficulty < stats[j].Difficulty
	})

	return stats, nil
}

// Recent returns the latest results of a session.
func (s *MemoryResultStore) Recent(_ context.Context, sessionID string, limit int) ([]models.GameResult, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	results := make([]models.GameResult, 0)
	for i := len(s.results) - 1; i >= 0 && len(results) < limit; i-- {
		if s.results[i].SessionID == sessionID {
			result := s.results[i]
			result.Moves = slices.Clone(result.Moves)
			results = append(results, result)
		}
	}

	return results, nil
}
