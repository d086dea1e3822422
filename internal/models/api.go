package models

import (
	"errors"
	"fmt"
	"time"
)

// CreateGamePayload is the request body for starting a session.
type CreateGamePayload struct {
	Difficulty string `json:"difficulty"`
}

// MovePayload is the request body for a human move. Either Field or both Row and Col are set.
type MovePayload struct {
	Row   *int   `json:"row,omitempty"`
	Col   *int   `json:"col,omitempty"`
	Field string `json:"field,omitempty"`
}

// Coord returns the coordinate the payload refers to.
func (p MovePayload) Coord() (Coord, error) {
	if p.Field != "" {
		if p.Row != nil || p.Col != nil {
			return Coord{}, errors.New("field cannot be combined with row and col")
		}
		return ParseField(p.Field)
	}

	if p.Row == nil || p.Col == nil {
		return Coord{}, errors.New("either field or both row and col are required")
	}

	coord := Coord{Row: *p.Row, Col: *p.Col}
	if !coord.Valid() {
		return Coord{}, fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, coord.Row, coord.Col)
	}

	return coord, nil
}

// ResetPayload is the request body for starting the next game of a session.
type ResetPayload struct {
	SameDifficulty bool   `json:"same_difficulty"`
	Difficulty     string `json:"difficulty,omitempty"`
}

// Validate checks the payload.
func (p ResetPayload) Validate() error {
	if p.SameDifficulty && p.Difficulty != "" {
		return errors.New("difficulty cannot be set together with same_difficulty")
	}
	return nil
}

// GameResult is a finished game as stored for statistics.
type GameResult struct {
	ID         string    `json:"id"          db:"id"`
	SessionID  string    `json:"session_id"  db:"session_id"`
	Difficulty string    `json:"difficulty"  db:"difficulty"`
	Outcome    string    `json:"outcome"     db:"outcome"`
	FirstMover string    `json:"first_mover" db:"first_mover"`
	Black      int       `json:"black"       db:"black"`
	White      int       `json:"white"       db:"white"`
	MoveCount  int       `json:"move_count"  db:"move_count"`
	Moves      []string  `json:"moves"       db:"-"`
	FinishedAt time.Time `json:"finished_at" db:"finished_at"`
}

// DifficultyStats aggregates the results of one difficulty.
type DifficultyStats struct {
	Difficulty string `json:"difficulty"  db:"difficulty"`
	Games      int    `json:"games"       db:"games"`
	PlayerWins int    `json:"player_wins" db:"player_wins"`
	CPUWins    int    `json:"cpu_wins"    db:"cpu_wins"`
	Draws      int    `json:"draws"       db:"draws"`
}

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Commit string `json:"commit"`
}
