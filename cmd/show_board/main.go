package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/lk16/flippy/reversi/internal/terminal"
)

func main() {
	boardString := flag.String("board", "", "the board to show, 64 characters of x, o and -")
	hint := flag.String("hint", "", "show legal moves of this side (black or white)")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()

	board, err := models.NewBoardFromString(*boardString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	side := models.EMPTY
	if *hint != "" {
		if err = side.UnmarshalText([]byte(*hint)); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	renderer := terminal.NewRenderer(!*noColor)
	for _, line := range renderer.Lines(board, side) {
		fmt.Println(line)
	}

	fmt.Printf("black: %d, white: %d\n", board.CountPieces(models.BLACK), board.CountPieces(models.WHITE))
}
