package repository

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/flippy/reversi/internal/config"
	"github.com/lk16/flippy/reversi/internal/game"
	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/lk16/flippy/reversi/internal/opponent"
	"github.com/lk16/flippy/reversi/internal/services"
)

const recentResultsLimit = 10

// GameResponse is a session together with its ID.
type GameResponse struct {
	ID string `json:"id"`
	game.View
}

// MoveResponse is returned after a move was played.
type MoveResponse struct {
	ID     string      `json:"id"`
	Result game.Result `json:"result"`
	Game   game.View   `json:"game"`
}

// lockedRand is a math/rand source that is safe for concurrent use.
type lockedRand struct {
	rng   *rand.Rand
	mutex sync.Mutex
}

func (r *lockedRand) Float64() float64 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.rng.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.rng.Intn(n)
}

var defaultRand = &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))} //nolint:gosec

type GameRepository struct {
	services *services.Services
	config   *config.ServerConfig
	rng      opponent.Rand
	now      func() time.Time
}

func NewGameRepository(c *fiber.Ctx) *GameRepository {
	return NewGameRepositoryFromServices(
		c.Locals("services").(*services.Services), //nolint: errcheck
		c.Locals("config").(*config.ServerConfig), //nolint: errcheck
	)
}

func NewGameRepositoryFromServices(services *services.Services, cfg *config.ServerConfig) *GameRepository {
	return &GameRepository{
		services: services,
		config:   cfg,
		rng:      defaultRand,
		now:      time.Now,
	}
}

func (repo *GameRepository) parseDifficulty(name string) (opponent.Difficulty, error) {
	if name == "" {
		return repo.config.DefaultDifficulty, nil
	}
	return opponent.ParseDifficulty(name)
}

// CreateGame starts a new session. An empty difficulty selects the configured default.
func (repo *GameRepository) CreateGame(ctx context.Context, difficulty string) (GameResponse, error) {
	parsed, err := repo.parseDifficulty(difficulty)
	if err != nil {
		return GameResponse{}, err
	}

	session, err := game.NewSession(parsed)
	if err != nil {
		return GameResponse{}, err
	}

	id, err := repo.services.Sessions.Create(ctx, session)
	if err != nil {
		return GameResponse{}, fmt.Errorf("error creating session: %w", err)
	}

	slog.Debug("Created session", "session", id, "difficulty", parsed)

	return GameResponse{ID: id, View: session.View()}, nil
}

// GetGame loads a session.
func (repo *GameRepository) GetGame(ctx context.Context, id string) (GameResponse, error) {
	session, err := repo.services.Sessions.Get(ctx, id)
	if err != nil {
		return GameResponse{}, err
	}

	return GameResponse{ID: id, View: session.View()}, nil
}

// LegalMoves returns the legal moves of the side to move.
func (repo *GameRepository) LegalMoves(ctx context.Context, id string) ([]models.Coord, error) {
	session, err := repo.services.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return session.LegalMoves(), nil
}

// SubmitMove plays a move for the human.
func (repo *GameRepository) SubmitMove(ctx context.Context, id string, coord models.Coord) (MoveResponse, error) {
	return repo.playMove(ctx, id, func(session *game.Session) (game.Result, error) {
		return session.SubmitMove(coord.Row, coord.Col)
	})
}

// OpponentMove lets the computer play.
func (repo *GameRepository) OpponentMove(ctx context.Context, id string) (MoveResponse, error) {
	return repo.playMove(ctx, id, func(session *game.Session) (game.Result, error) {
		return session.RequestOpponentMove(repo.rng)
	})
}

func (repo *GameRepository) playMove(
	ctx context.Context,
	id string,
	play func(*game.Session) (game.Result, error),
) (MoveResponse, error) {
	var result game.Result

	session, err := repo.services.Sessions.Update(ctx, id, func(session *game.Session) error {
		var err error
		result, err = play(session)
		return err
	})
	if err != nil {
		return MoveResponse{}, err
	}

	if result.Event == game.GameOver {
		repo.recordResult(ctx, id, session)
	}

	return MoveResponse{ID: id, Result: result, Game: session.View()}, nil
}

// recordResult stores a finished game. Failures are logged, the game itself is already saved.
func (repo *GameRepository) recordResult(ctx context.Context, id string, session *game.Session) {
	history := session.History()
	moves := make([]string, 0, len(history))
	for _, move := range history {
		if move.Pass {
			moves = append(moves, "pass")
		} else {
			moves = append(moves, move.Field())
		}
	}

	score := session.Score()

	result := models.GameResult{
		ID:         uuid.New().String(),
		SessionID:  id,
		Difficulty: session.Difficulty().String(),
		Outcome:    session.Outcome().String(),
		FirstMover: session.FirstMover().String(),
		Black:      score.Black,
		White:      score.White,
		MoveCount:  session.MoveCount(),
		Moves:      moves,
		FinishedAt: repo.now(),
	}

	if err := repo.services.Results.Record(ctx, result); err != nil {
		slog.Error("Failed to record game result", "session", id, "error", err)
		return
	}

	slog.Info("Game finished", "session", id, "outcome", result.Outcome, "black", score.Black, "white", score.White)
}

// ResetGame starts the next game of a session. Unless the difficulty is kept, the new game uses the
// difficulty from the payload or the configured default.
func (repo *GameRepository) ResetGame(ctx context.Context, id string, payload models.ResetPayload) (GameResponse, error) {
	if err := payload.Validate(); err != nil {
		return GameResponse{}, err
	}

	difficulty, err := repo.parseDifficulty(payload.Difficulty)
	if err != nil {
		return GameResponse{}, err
	}

	session, err := repo.services.Sessions.Update(ctx, id, func(session *game.Session) error {
		if err := session.Reset(payload.SameDifficulty); err != nil {
			return err
		}

		if payload.SameDifficulty {
			return nil
		}

		return session.SetDifficulty(difficulty)
	})
	if err != nil {
		return GameResponse{}, err
	}

	return GameResponse{ID: id, View: session.View()}, nil
}

// Stats returns the aggregated results per difficulty.
func (repo *GameRepository) Stats(ctx context.Context) ([]models.DifficultyStats, error) {
	stats, err := repo.services.Results.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting stats: %w", err)
	}
	return stats, nil
}

// RecentResults returns the latest finished games of a session.
func (repo *GameRepository) RecentResults(ctx context.Context, id string) ([]models.GameResult, error) {
	if _, err := repo.services.Sessions.Get(ctx, id); err != nil {
		return nil, err
	}

	results, err := repo.services.Results.Recent(ctx, id, recentResultsLimit)
	if err != nil {
		return nil, fmt.Errorf("error getting results: %w", err)
	}
	return results, nil
}
