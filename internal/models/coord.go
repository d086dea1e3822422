package models

import (
	"fmt"
	"strings"
)

// Coord is a square on the board, rows and columns are indexed 0..7.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid checks if the coordinate is on the board.
func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// IsCorner checks if the coordinate is one of the four corners.
func (c Coord) IsCorner() bool {
	return isRim(c.Row) && isRim(c.Col)
}

// IsEdge checks if the coordinate is on the outer ring, corners included.
func (c Coord) IsEdge() bool {
	return isRim(c.Row) || isRim(c.Col)
}

// IsCornerAdjacent checks if the coordinate touches a corner without being one.
func (c Coord) IsCornerAdjacent() bool {
	return nearRim(c.Row) && nearRim(c.Col) && !c.IsCorner()
}

// Field returns the field notation of the coordinate, for example "d3".
func (c Coord) Field() string {
	if !c.Valid() {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+c.Col, c.Row+1)
}

func (c Coord) String() string {
	return c.Field()
}

// ParseField converts a field notation (e.g. "a1", "h8") to a coordinate.
func ParseField(field string) (Coord, error) {
	if len(field) != 2 {
		return Coord{}, fmt.Errorf("%w: field %q", ErrInvalidCoordinate, field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Coord{}, fmt.Errorf("%w: field %q", ErrInvalidCoordinate, field)
	}

	return Coord{Row: int(field[1] - '1'), Col: int(field[0] - 'a')}, nil
}

// Move is a placement by a side. A pass is recorded with Pass set and no coordinate.
type Move struct {
	Coord
	Side Cell `json:"side"`
	Pass bool `json:"pass,omitempty"`
}

func (m Move) String() string {
	if m.Pass {
		return m.Side.String() + " passes"
	}
	return m.Side.String() + " " + m.Field()
}

func isRim(i int) bool {
	return i == 0 || i == BoardSize-1
}

func nearRim(i int) bool {
	return i <= 1 || i >= BoardSize-2
}
