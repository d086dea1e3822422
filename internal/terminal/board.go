package terminal

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/lk16/flippy/reversi/internal/models"
)

// Renderer draws boards for the terminal.
type Renderer struct {
	au aurora.Aurora
}

// NewRenderer creates a Renderer. Without colors the output matches Board.ASCIIArtLines.
func NewRenderer(colors bool) *Renderer {
	return &Renderer{au: aurora.NewAurora(colors)}
}

// Lines renders the board. Legal moves of hint are marked, pass EMPTY to leave them out.
func (r *Renderer) Lines(board *models.Board, hint models.Cell) []string {
	lines := make([]string, 0, models.BoardSize+2)
	lines = append(lines, "+-a-b-c-d-e-f-g-h-+")

	for row := range models.BoardSize {
		var line strings.Builder
		fmt.Fprintf(&line, "%d ", row+1)

		for col := range models.BoardSize {
			cell, _ := board.Get(row, col)

			switch {
			case cell == models.WHITE:
				line.WriteString(r.au.White("○ ").BgGreen().String())
			case cell == models.BLACK:
				line.WriteString(r.au.Black("● ").BgGreen().String())
			case hint.IsSide() && board.IsLegalMove(row, col, hint):
				line.WriteString(r.au.Yellow("· ").BgGreen().String())
			default:
				line.WriteString(r.au.BgGreen("  ").String())
			}
		}

		line.WriteString("|")
		lines = append(lines, line.String())
	}

	lines = append(lines, "+-----------------+")
	return lines
}

// Side returns the colored name of a side.
func (r *Renderer) Side(side models.Cell) string {
	switch side {
	case models.BLACK:
		return r.au.Bold("black").String()
	case models.WHITE:
		return r.au.Bold(r.au.White("white")).String()
	default:
		return side.String()
	}
}

// Good highlights a favourable message.
func (r *Renderer) Good(msg string) string {
	return r.au.Green(msg).String()
}

// Bad highlights an unfavourable message.
func (r *Renderer) Bad(msg string) string {
	return r.au.Red(msg).String()
}

// Neutral highlights a message that is neither good nor bad.
func (r *Renderer) Neutral(msg string) string {
	return r.au.Yellow(msg).String()
}
