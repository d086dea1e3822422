package game

import (
	"fmt"

	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/lk16/flippy/reversi/internal/opponent"
)

// Snapshot is the serialisable state of a Session.
type Snapshot struct {
	Board      string              `json:"board"`
	Turn       models.Cell         `json:"turn"`
	First      models.Cell         `json:"first"`
	State      State               `json:"state"`
	MoveCount  int                 `json:"move_count"`
	Difficulty opponent.Difficulty `json:"difficulty"`
	Tallies    Tallies             `json:"tallies"`
	Outcome    Outcome             `json:"outcome"`
	Supply     Supply              `json:"supply"`
	History    []models.Move       `json:"history"`
}

// View is a Snapshot with derived values for presentation.
type View struct {
	Snapshot
	Score      Score          `json:"score"`
	LegalMoves []models.Coord `json:"legal_moves"`
}

// Snapshot captures the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Board:      s.board.String(),
		Turn:       s.turn,
		First:      s.first,
		State:      s.state,
		MoveCount:  s.moveCount,
		Difficulty: s.difficulty,
		Tallies:    s.tallies,
		Outcome:    s.outcome,
		Supply:     s.supply,
		History:    s.History(),
	}
}

// View returns the snapshot together with the score and the legal moves of the side to move.
func (s *Session) View() View {
	return View{
		Snapshot:   s.Snapshot(),
		Score:      s.Score(),
		LegalMoves: s.LegalMoves(),
	}
}

// Restore rebuilds a session from a snapshot, rejecting inconsistent ones.
func Restore(snap Snapshot) (*Session, error) {
	board, err := models.NewBoardFromString(snap.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to restore board: %w", err)
	}

	policy, err := opponent.NewPolicy(snap.Difficulty)
	if err != nil {
		return nil, err
	}

	if err = snap.First.Validate(); err != nil {
		return nil, fmt.Errorf("invalid first mover: %w", err)
	}

	switch snap.State {
	case Terminal:
		if snap.Turn != models.EMPTY {
			return nil, fmt.Errorf("%w: finished game with %s to move", ErrInvalidState, snap.Turn)
		}
		if snap.Outcome == NoOutcome {
			return nil, fmt.Errorf("%w: finished game without outcome", ErrInvalidState)
		}
	case AwaitingFirstMove, InProgress:
		if err = snap.Turn.Validate(); err != nil {
			return nil, fmt.Errorf("invalid turn: %w", err)
		}
		if snap.Outcome != NoOutcome {
			return nil, fmt.Errorf("%w: running game with outcome %s", ErrInvalidState, snap.Outcome)
		}
		if board.IsTerminal() {
			return nil, fmt.Errorf("%w: running game without legal moves", ErrInvalidState)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, int(snap.State))
	}

	if snap.MoveCount < 0 || snap.MoveCount > models.Cells {
		return nil, fmt.Errorf("%w: move count %d", ErrInvalidState, snap.MoveCount)
	}

	if snap.Tallies.PlayerWins < 0 || snap.Tallies.CPUWins < 0 || snap.Tallies.Draws < 0 {
		return nil, fmt.Errorf("%w: negative tallies", ErrInvalidState)
	}

	history := make([]models.Move, 0, len(snap.History))
	history = append(history, snap.History...)

	return &Session{
		board:      board,
		turn:       snap.Turn,
		first:      snap.First,
		state:      snap.State,
		moveCount:  snap.MoveCount,
		difficulty: snap.Difficulty,
		policy:     policy,
		tallies:    snap.Tallies,
		outcome:    snap.Outcome,
		supply:     snap.Supply,
		history:    history,
	}, nil
}
