package opponent

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDifficulty is returned for anything but easy, medium or hard.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty selects the scoring heuristic of the computer opponent.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

// DefaultDifficulty is used when no difficulty was picked yet.
const DefaultDifficulty = Medium

// ParseDifficulty converts a name like "hard" to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
}

// Validate returns ErrInvalidDifficulty for unknown values.
func (d Difficulty) Validate() error {
	if _, ok := tiers[d]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}
	return nil
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
