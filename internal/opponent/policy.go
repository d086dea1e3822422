package opponent

import (
	"sort"

	"github.com/lk16/flippy/reversi/internal/models"
)

// Rand is the source of randomness used for move selection. *math/rand.Rand implements it.
type Rand interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64

	// Intn returns a number in [0, n).
	Intn(n int) int
}

// Candidate is a legal move with its heuristic score.
type Candidate struct {
	models.Coord
	Captures int     `json:"captures"`
	Score    float64 `json:"score"`
}

// Policy picks moves for the computer opponent. It never changes the board it is given.
type Policy struct {
	difficulty Difficulty
	weights    Weights
}

// NewPolicy creates a policy for the given difficulty.
func NewPolicy(difficulty Difficulty) (*Policy, error) {
	weights, err := WeightsFor(difficulty)
	if err != nil {
		return nil, err
	}

	return &Policy{
		difficulty: difficulty,
		weights:    weights,
	}, nil
}

// Difficulty returns the difficulty of the policy.
func (p *Policy) Difficulty() Difficulty {
	return p.difficulty
}

// score computes the heuristic value of a single legal move. It draws exactly one random number.
func (p *Policy) score(coord models.Coord, captures int, rng Rand) float64 {
	w := p.weights
	score := 0.0

	if w.Positional {
		if coord.IsCorner() {
			score += w.Corner
		}

		if coord.IsCornerAdjacent() {
			score += w.CornerAdjacent
		}

		if coord.IsEdge() {
			score += w.Edge
		}

		score += w.CaptureFactor * float64(captures)
	}

	return score + rng.Float64()*w.Jitter
}

// Rank scores all legal moves of side, best first. Equal scores keep row-major order.
func (p *Policy) Rank(board *models.Board, side models.Cell, rng Rand) []Candidate {
	candidates := make([]Candidate, 0)

	for _, coord := range board.LegalMoves(side) {
		captures := board.CaptureCount(coord.Row, coord.Col, side)
		candidates = append(candidates, Candidate{
			Coord:    coord,
			Captures: captures,
			Score:    p.score(coord, captures, rng),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

// SelectMove picks a move for side. It returns false if side has no legal move, which means side passes.
func (p *Policy) SelectMove(board *models.Board, side models.Cell, rng Rand) (models.Move, bool) {
	candidates := p.Rank(board, side, rng)
	if len(candidates) == 0 {
		return models.Move{}, false
	}

	width := p.weights.PickWidth
	if width <= 0 || width > len(candidates) {
		width = len(candidates)
	}

	index := 0
	if width > 1 {
		index = rng.Intn(width)
	}

	return models.Move{Coord: candidates[index].Coord, Side: side}, true
}

// SelectMove picks a move for side using a one-off policy for difficulty.
func SelectMove(board *models.Board, side models.Cell, difficulty Difficulty, rng Rand) (models.Move, bool, error) {
	policy, err := NewPolicy(difficulty)
	if err != nil {
		return models.Move{}, false, err
	}

	move, ok := policy.SelectMove(board, side, rng)
	return move, ok, nil
}
