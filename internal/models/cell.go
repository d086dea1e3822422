package models

import "fmt"

// Cell is the content of a board square. The two non-empty values double as the sides of the game.
type Cell int

const (
	EMPTY Cell = 0
	BLACK Cell = 1
	WHITE Cell = -1
)

// Opponent returns the other side. EMPTY stays EMPTY.
func (c Cell) Opponent() Cell {
	return -c
}

// IsSide checks if the cell is BLACK or WHITE.
func (c Cell) IsSide() bool {
	return c == BLACK || c == WHITE
}

// Validate returns ErrInvalidSide if the cell is not a side.
func (c Cell) Validate() error {
	if !c.IsSide() {
		return fmt.Errorf("%w: %d", ErrInvalidSide, int(c))
	}
	return nil
}

func (c Cell) String() string {
	switch c {
	case BLACK:
		return "black"
	case WHITE:
		return "white"
	case EMPTY:
		return "empty"
	default:
		return fmt.Sprintf("cell(%d)", int(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Cell) MarshalText() ([]byte, error) {
	switch c {
	case BLACK, WHITE, EMPTY:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, int(c))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "black":
		*c = BLACK
	case "white":
		*c = WHITE
	case "empty":
		*c = EMPTY
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSide, string(text))
	}
	return nil
}

// symbol is the character used for the cell in board strings.
func (c Cell) symbol() byte {
	switch c {
	case BLACK:
		return 'x'
	case WHITE:
		return 'o'
	default:
		return '-'
	}
}

func cellFromSymbol(b byte) (Cell, bool) {
	switch b {
	case 'x', 'X', '*':
		return BLACK, true
	case 'o', 'O':
		return WHITE, true
	case '-', '.':
		return EMPTY, true
	default:
		return EMPTY, false
	}
}
