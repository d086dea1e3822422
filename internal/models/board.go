package models

import (
	"fmt"
	"strings"
)

const (
	BoardSize = 8
	Cells     = BoardSize * BoardSize
)

// directions are the eight unit steps used for legality and captures.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board is an 8x8 Reversi board, row-major.
type Board struct {
	cells [BoardSize][BoardSize]Cell
}

// NewBoard creates a board with the starting position where BLACK moves first.
func NewBoard() *Board {
	b := &Board{}
	b.Initialize()
	return b
}

// NewBoardFor creates a board with the starting position for the given first mover.
func NewBoardFor(first Cell) (*Board, error) {
	b := &Board{}
	if err := b.InitializeFor(first); err != nil {
		return nil, err
	}
	return b, nil
}

// NewBoardEmpty creates a board without any discs.
func NewBoardEmpty() *Board {
	return &Board{}
}

// NewBoardFromString parses the output of Board.String. Whitespace and '/' are ignored.
func NewBoardFromString(s string) (*Board, error) {
	b := &Board{}
	i := 0

	for j := range len(s) {
		ch := s[j]
		if ch == '/' || ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r' {
			continue
		}

		cell, ok := cellFromSymbol(ch)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected character %q", ErrInvalidBoard, ch)
		}

		if i >= Cells {
			return nil, fmt.Errorf("%w: more than %d cells", ErrInvalidBoard, Cells)
		}

		b.cells[i/BoardSize][i%BoardSize] = cell
		i++
	}

	if i != Cells {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidBoard, i, Cells)
	}

	return b, nil
}

// Initialize resets the board to the starting position where BLACK moves first.
func (b *Board) Initialize() {
	_ = b.InitializeFor(BLACK)
}

// InitializeFor resets the board and places the four starting discs.
// The first mover owns (3,4) and (4,3), the other side owns (3,3) and (4,4).
func (b *Board) InitializeFor(first Cell) error {
	if err := first.Validate(); err != nil {
		return err
	}

	b.cells = [BoardSize][BoardSize]Cell{}

	mid := BoardSize / 2
	b.cells[mid-1][mid-1] = first.Opponent()
	b.cells[mid][mid] = first.Opponent()
	b.cells[mid-1][mid] = first
	b.cells[mid][mid-1] = first

	return nil
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// Get returns the cell at the given coordinate.
func (b *Board) Get(row, col int) (Cell, error) {
	if !(Coord{Row: row, Col: col}).Valid() {
		return EMPTY, fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, row, col)
	}
	return b.cells[row][col], nil
}

// Set overwrites a single cell without applying any rules. It is meant for building test positions.
func (b *Board) Set(row, col int, cell Cell) error {
	if !(Coord{Row: row, Col: col}).Valid() {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, row, col)
	}
	if cell != EMPTY && !cell.IsSide() {
		return fmt.Errorf("%w: %d", ErrInvalidSide, int(cell))
	}
	b.cells[row][col] = cell
	return nil
}

// traverse walks all eight directions from (row, col) and counts the opponent discs
// that side would capture there. If flip is set, those discs change colour and are
// returned. The caller must have checked that (row, col) is on the board.
func (b *Board) traverse(row, col int, side Cell, flip bool) (int, []Coord) {
	if b.cells[row][col] != EMPTY {
		return 0, nil
	}

	opponent := side.Opponent()
	count := 0

	var flipped []Coord

	for _, dir := range directions {
		dr, dc := dir[0], dir[1]
		r, c := row+dr, col+dc
		run := 0

		for r >= 0 && r < BoardSize && c >= 0 && c < BoardSize && b.cells[r][c] == opponent {
			r += dr
			c += dc
			run++
		}

		if run == 0 || r < 0 || r >= BoardSize || c < 0 || c >= BoardSize || b.cells[r][c] != side {
			continue
		}

		count += run

		if !flip {
			continue
		}

		for dist := 1; dist <= run; dist++ {
			fr, fc := row+dist*dr, col+dist*dc
			b.cells[fr][fc] = side
			flipped = append(flipped, Coord{Row: fr, Col: fc})
		}
	}

	return count, flipped
}

// IsLegalMove checks if side may place a disc on (row, col).
func (b *Board) IsLegalMove(row, col int, side Cell) bool {
	return b.CaptureCount(row, col, side) > 0
}

// CaptureCount returns the number of discs side would flip by playing on (row, col).
// It returns 0 for illegal moves and never changes the board.
func (b *Board) CaptureCount(row, col int, side Cell) int {
	if !side.IsSide() || !(Coord{Row: row, Col: col}).Valid() {
		return 0
	}

	count, _ := b.traverse(row, col, side, false)
	return count
}

// ApplyMove places a disc for side on (row, col) and flips all captured discs.
// The returned coordinates never include the placed disc. On error the board is unchanged.
func (b *Board) ApplyMove(row, col int, side Cell) ([]Coord, error) {
	if err := side.Validate(); err != nil {
		return nil, err
	}

	if !(Coord{Row: row, Col: col}).Valid() {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, row, col)
	}

	if b.cells[row][col] != EMPTY {
		return nil, fmt.Errorf("%w: %s is occupied", ErrInvalidMove, Coord{Row: row, Col: col})
	}

	if b.CaptureCount(row, col, side) == 0 {
		return nil, fmt.Errorf("%w: %s captures nothing for %s", ErrInvalidMove, Coord{Row: row, Col: col}, side)
	}

	_, flipped := b.traverse(row, col, side, true)
	b.cells[row][col] = side

	return flipped, nil
}

// HasAnyLegalMove checks if side has at least one legal move.
func (b *Board) HasAnyLegalMove(side Cell) bool {
	for row := range BoardSize {
		for col := range BoardSize {
			if b.IsLegalMove(row, col, side) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns all legal moves for side in row-major order.
func (b *Board) LegalMoves(side Cell) []Coord {
	moves := make([]Coord, 0)
	for row := range BoardSize {
		for col := range BoardSize {
			if b.IsLegalMove(row, col, side) {
				moves = append(moves, Coord{Row: row, Col: col})
			}
		}
	}
	return moves
}

// CountPieces returns the number of cells holding the given value. EMPTY counts empty cells.
func (b *Board) CountPieces(cell Cell) int {
	count := 0
	for row := range BoardSize {
		for col := range BoardSize {
			if b.cells[row][col] == cell {
				count++
			}
		}
	}
	return count
}

// IsTerminal checks if neither side can move.
func (b *Board) IsTerminal() bool {
	return !b.HasAnyLegalMove(BLACK) && !b.HasAnyLegalMove(WHITE)
}

// Equal checks if two boards hold the same discs.
func (b *Board) Equal(other *Board) bool {
	return b.cells == other.cells
}

// String returns the 64 character representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Cells)
	for row := range BoardSize {
		for col := range BoardSize {
			sb.WriteByte(b.cells[row][col].symbol())
		}
	}
	return sb.String()
}

// ASCIIArtLines returns the ascii art lines for the board. Legal moves of hint are
// marked with a dot, pass EMPTY to leave them out.
func (b *Board) ASCIIArtLines(hint Cell) []string {
	lines := make([]string, BoardSize+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := range BoardSize {
		line := fmt.Sprintf("%d ", row+1)

		for col := range BoardSize {
			switch {
			case b.cells[row][col] == WHITE:
				line += "○ "
			case b.cells[row][col] == BLACK:
				line += "● "
			case hint.IsSide() && b.IsLegalMove(row, col, hint):
				line += "· "
			default:
				line += "  "
			}
		}

		lines[row+1] = line + "|"
	}

	lines[BoardSize+1] = "+-----------------+"

	return lines
}
