package game

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when unmarshalling an unknown state or outcome.
var ErrInvalidState = errors.New("invalid state")

// State is the lifecycle phase of a single game.
type State int

const (
	AwaitingFirstMove State = iota
	InProgress
	Terminal
)

var stateNames = map[State]string{
	AwaitingFirstMove: "awaiting_first_move",
	InProgress:        "in_progress",
	Terminal:          "terminal",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidState, string(text))
}

// Outcome is the result of a finished game, seen from the human player.
type Outcome int

const (
	NoOutcome Outcome = iota
	Win
	Loss
	Draw
)

var outcomeNames = map[Outcome]string{
	NoOutcome: "none",
	Win:       "win",
	Loss:      "loss",
	Draw:      "draw",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	name, ok := outcomeNames[o]
	if !ok {
		return nil, fmt.Errorf("%w: outcome %d", ErrInvalidState, int(o))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	for outcome, name := range outcomeNames {
		if name == string(text) {
			*o = outcome
			return nil
		}
	}
	return fmt.Errorf("%w: outcome %q", ErrInvalidState, string(text))
}

// Event tells the caller what happened after a move was resolved.
type Event int

const (
	// TurnChanged means the other side moves next.
	TurnChanged Event = iota

	// Passed means the other side had no legal move, so the same side moves again.
	Passed

	// GameOver means neither side can move.
	GameOver
)

var eventNames = map[Event]string{
	TurnChanged: "turn",
	Passed:      "pass",
	GameOver:    "game_over",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// MarshalText implements encoding.TextMarshaler.
func (e Event) MarshalText() ([]byte, error) {
	name, ok := eventNames[e]
	if !ok {
		return nil, fmt.Errorf("%w: event %d", ErrInvalidState, int(e))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Event) UnmarshalText(text []byte) error {
	for event, name := range eventNames {
		if name == string(text) {
			*e = event
			return nil
		}
	}
	return fmt.Errorf("%w: event %q", ErrInvalidState, string(text))
}
