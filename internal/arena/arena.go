package arena

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/lk16/flippy/reversi/internal/opponent"
)

// Config describes a series of computer-vs-computer games.
type Config struct {
	Black opponent.Difficulty
	White opponent.Difficulty
	Games int
	Seed  int64
}

// GameResult is the final position of a single game.
type GameResult struct {
	Black  int
	White  int
	Moves  int
	Passes int
}

// Winner returns the side with the most discs, EMPTY for a draw.
func (r GameResult) Winner() models.Cell {
	switch {
	case r.Black > r.White:
		return models.BLACK
	case r.White > r.Black:
		return models.WHITE
	default:
		return models.EMPTY
	}
}

// Summary aggregates the results of a series.
type Summary struct {
	Games      int
	BlackWins  int
	WhiteWins  int
	Draws      int
	BlackDiscs int
	WhiteDiscs int
}

// Add counts a finished game.
func (s *Summary) Add(result GameResult) {
	s.Games++
	s.BlackDiscs += result.Black
	s.WhiteDiscs += result.White

	switch result.Winner() {
	case models.BLACK:
		s.BlackWins++
	case models.WHITE:
		s.WhiteWins++
	default:
		s.Draws++
	}
}

// Score formats the wins of black, the wins of white and the draws.
func (s *Summary) Score() string {
	return fmt.Sprintf("%d-%d-%d", s.BlackWins, s.WhiteWins, s.Draws)
}

// PlayGame plays one game from the starting position. Black moves first.
func PlayGame(black, white *opponent.Policy, rng opponent.Rand) (GameResult, error) {
	board := models.NewBoard()
	policies := map[models.Cell]*opponent.Policy{
		models.BLACK: black,
		models.WHITE: white,
	}

	var result GameResult
	side := models.BLACK

	for {
		move, ok := policies[side].SelectMove(board, side, rng)
		if !ok {
			if !board.HasAnyLegalMove(side.Opponent()) {
				break
			}
			result.Passes++
			side = side.Opponent()
			continue
		}

		if _, err := board.ApplyMove(move.Row, move.Col, side); err != nil {
			return GameResult{}, fmt.Errorf("policy picked an illegal move: %w", err)
		}

		result.Moves++
		side = side.Opponent()
	}

	result.Black = board.CountPieces(models.BLACK)
	result.White = board.CountPieces(models.WHITE)
	return result, nil
}

// Run plays a series of games. onGame is called after every game, it may be nil.
func Run(cfg Config, onGame func(index int, result GameResult)) (Summary, error) {
	if cfg.Games <= 0 {
		return Summary{}, errors.New("number of games must be positive")
	}

	black, err := opponent.NewPolicy(cfg.Black)
	if err != nil {
		return Summary{}, fmt.Errorf("black: %w", err)
	}

	white, err := opponent.NewPolicy(cfg.White)
	if err != nil {
		return Summary{}, fmt.Errorf("white: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec

	var summary Summary
	for i := range cfg.Games {
		result, err := PlayGame(black, white, rng)
		if err != nil {
			return Summary{}, err
		}

		summary.Add(result)

		if onGame != nil {
			onGame(i, result)
		}
	}

	return summary, nil
}
