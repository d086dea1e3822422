package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, s string) *Board {
	t.Helper()
	board, err := NewBoardFromString(s)
	require.NoError(t, err)
	return board
}

func TestNewBoard(t *testing.T) {
	board := NewBoard()

	require.Equal(t, 2, board.CountPieces(BLACK))
	require.Equal(t, 2, board.CountPieces(WHITE))
	require.Equal(t, 60, board.CountPieces(EMPTY))

	for _, tc := range []struct {
		row, col int
		want     Cell
	}{
		{3, 3, WHITE},
		{4, 4, WHITE},
		{3, 4, BLACK},
		{4, 3, BLACK},
	} {
		cell, err := board.Get(tc.row, tc.col)
		require.NoError(t, err)
		require.Equal(t, tc.want, cell)
	}
}

func TestNewBoardFor(t *testing.T) {
	board, err := NewBoardFor(WHITE)
	require.NoError(t, err)

	cell, err := board.Get(3, 4)
	require.NoError(t, err)
	require.Equal(t, WHITE, cell)

	cell, err = board.Get(3, 3)
	require.NoError(t, err)
	require.Equal(t, BLACK, cell)

	require.Len(t, board.LegalMoves(WHITE), 4)
	require.False(t, board.HasAnyLegalMove(EMPTY))

	_, err = NewBoardFor(EMPTY)
	require.ErrorIs(t, err, ErrInvalidSide)
}

func TestBoard_LegalMovesStart(t *testing.T) {
	board := NewBoard()

	expected := []Coord{{2, 3}, {3, 2}, {4, 5}, {5, 4}}
	require.Equal(t, expected, board.LegalMoves(BLACK))

	for row := range BoardSize {
		for col := range BoardSize {
			want := false
			for _, c := range expected {
				if c.Row == row && c.Col == col {
					want = true
				}
			}
			require.Equal(t, want, board.IsLegalMove(row, col, BLACK), "row %d col %d", row, col)
		}
	}
}

func TestBoard_IsLegalMoveOutOfBounds(t *testing.T) {
	board := NewBoard()

	require.False(t, board.IsLegalMove(-1, 3, BLACK))
	require.False(t, board.IsLegalMove(3, 8, BLACK))
	require.False(t, board.IsLegalMove(2, 3, EMPTY))
}

func TestBoard_IsLegalMoveHasNoSideEffects(t *testing.T) {
	board := NewBoard()
	before := board.String()

	for range 5 {
		require.True(t, board.IsLegalMove(2, 3, BLACK))
		require.False(t, board.IsLegalMove(0, 0, BLACK))
		require.Equal(t, 1, board.CaptureCount(2, 3, BLACK))
	}

	require.Equal(t, before, board.String())
}

func TestBoard_ApplyMoveCapture(t *testing.T) {
	board := NewBoard()

	flipped, err := board.ApplyMove(2, 3, BLACK)
	require.NoError(t, err)
	require.Equal(t, []Coord{{3, 3}}, flipped)

	cell, err := board.Get(3, 3)
	require.NoError(t, err)
	require.Equal(t, BLACK, cell)

	cell, err = board.Get(2, 3)
	require.NoError(t, err)
	require.Equal(t, BLACK, cell)

	require.Equal(t, 4, board.CountPieces(BLACK))
	require.Equal(t, 1, board.CountPieces(WHITE))
}

func TestBoard_ApplyMoveMultipleDirections(t *testing.T) {
	board := mustBoard(t, ""+
		"x-x-x---"+
		"-ooo----"+
		"xo-ox---"+
		"-ooo----"+
		"x-x-x---"+
		"--------"+
		"--------"+
		"--------")

	require.Equal(t, 8, board.CaptureCount(2, 2, BLACK))

	flipped, err := board.ApplyMove(2, 2, BLACK)
	require.NoError(t, err)
	require.Len(t, flipped, 8)
	require.Equal(t, 0, board.CountPieces(WHITE))
	require.Equal(t, 17, board.CountPieces(BLACK))

	seen := make(map[Coord]bool)
	for _, c := range flipped {
		require.False(t, seen[c], "cell %s flipped twice", c)
		seen[c] = true
	}
}

func TestBoard_ApplyMoveErrors(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		side     Cell
		wantErr  error
	}{
		{"row too low", -1, 0, BLACK, ErrInvalidCoordinate},
		{"col too high", 0, 8, BLACK, ErrInvalidCoordinate},
		{"occupied", 3, 3, BLACK, ErrInvalidMove},
		{"no capture", 0, 0, BLACK, ErrInvalidMove},
		{"wrong colour capture", 2, 3, WHITE, ErrInvalidMove},
		{"empty side", 2, 3, EMPTY, ErrInvalidSide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			before := board.String()

			flipped, err := board.ApplyMove(tt.row, tt.col, tt.side)
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, flipped)
			require.Equal(t, before, board.String())
		})
	}
}

func TestBoard_RunOffBoardDoesNotCapture(t *testing.T) {
	// White runs to the edge without a closing black disc.
	board := mustBoard(t, ""+
		"-ooo----"+
		"--------"+
		"--------"+
		"--------"+
		"--------"+
		"--------"+
		"--------"+
		"-------x")

	require.False(t, board.IsLegalMove(0, 0, BLACK))
	require.False(t, board.IsLegalMove(0, 4, BLACK))
	require.False(t, board.HasAnyLegalMove(BLACK))
}

func TestBoard_GetErrors(t *testing.T) {
	board := NewBoard()

	_, err := board.Get(8, 0)
	require.ErrorIs(t, err, ErrInvalidCoordinate)

	err = board.Set(0, 0, Cell(5))
	require.ErrorIs(t, err, ErrInvalidSide)

	err = board.Set(0, -1, BLACK)
	require.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestBoard_StringRoundTrip(t *testing.T) {
	board := NewBoard()
	s := board.String()

	require.Len(t, s, Cells)
	require.Equal(t, "---------------------------ox------xo---------------------------", s)

	parsed, err := NewBoardFromString(s)
	require.NoError(t, err)
	require.True(t, board.Equal(parsed))

	withSeparators, err := NewBoardFromString("--------/--------/--------/---ox---/---xo---/--------/--------/--------")
	require.NoError(t, err)
	require.True(t, board.Equal(withSeparators))
}

func TestNewBoardFromStringErrors(t *testing.T) {
	for _, s := range []string{"", "xo", "?" + NewBoard().String()[1:], NewBoard().String() + "x"} {
		_, err := NewBoardFromString(s)
		require.ErrorIs(t, err, ErrInvalidBoard, s)
	}
}

func TestBoard_Clone(t *testing.T) {
	board := NewBoard()
	clone := board.Clone()

	_, err := clone.ApplyMove(2, 3, BLACK)
	require.NoError(t, err)

	require.False(t, board.Equal(clone))
	require.Equal(t, 2, board.CountPieces(BLACK))
}

func TestBoard_ASCIIArtLines(t *testing.T) {
	lines := NewBoard().ASCIIArtLines(BLACK)

	require.Len(t, lines, 10)
	require.Equal(t, "+-a-b-c-d-e-f-g-h-+", lines[0])
	require.Equal(t, "3       ·         |", lines[3])
	require.Equal(t, "4     · ○ ●       |", lines[4])
	require.Equal(t, "+-----------------+", lines[9])
}

// TestBoard_RandomPlayouts checks the board invariants over many random games.
func TestBoard_RandomPlayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := range 200 {
		board := NewBoard()
		side := BLACK
		placements := 0

		for !board.IsTerminal() {
			if !board.HasAnyLegalMove(side) {
				side = side.Opponent()
				continue
			}

			moves := board.LegalMoves(side)
			move := moves[rng.Intn(len(moves))]

			before := board.Clone()
			emptyBefore := board.CountPieces(EMPTY)
			ownBefore := board.CountPieces(side)
			expectedFlips := board.CaptureCount(move.Row, move.Col, side)

			flipped, err := board.ApplyMove(move.Row, move.Col, side)
			require.NoError(t, err)
			placements++

			require.Len(t, flipped, expectedFlips)
			require.Equal(t, emptyBefore-1, board.CountPieces(EMPTY))
			require.Equal(t, ownBefore+1+len(flipped), board.CountPieces(side))
			require.Equal(t, Cells, board.CountPieces(BLACK)+board.CountPieces(WHITE)+board.CountPieces(EMPTY))

			placed, err := board.Get(move.Row, move.Col)
			require.NoError(t, err)
			require.Equal(t, side, placed)

			for _, c := range flipped {
				require.NotEqual(t, move, c)

				old, err := before.Get(c.Row, c.Col)
				require.NoError(t, err)
				require.Equal(t, side.Opponent(), old)

				now, err := board.Get(c.Row, c.Col)
				require.NoError(t, err)
				require.Equal(t, side, now)
			}

			side = side.Opponent()
		}

		require.LessOrEqual(t, placements, Cells-4, "game %d", game)
	}
}
