package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lk16/flippy/reversi/internal/arena"
	"github.com/lk16/flippy/reversi/internal/config"
	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/lk16/flippy/reversi/internal/opponent"
	"github.com/lk16/flippy/reversi/internal/terminal"
)

func main() {
	config.SetLogLevel()

	blackName := flag.String("black", "hard", "difficulty of the black player")
	whiteName := flag.String("white", "medium", "difficulty of the white player")
	games := flag.Int("games", 100, "number of games to play")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()

	black, err := opponent.ParseDifficulty(*blackName)
	if err != nil {
		slog.Error("Invalid black difficulty", "error", err)
		os.Exit(1)
	}

	white, err := opponent.ParseDifficulty(*whiteName)
	if err != nil {
		slog.Error("Invalid white difficulty", "error", err)
		os.Exit(1)
	}

	cfg := arena.Config{Black: black, White: white, Games: *games, Seed: *seed}
	slog.Debug("Starting arena", "black", black, "white", white, "games", *games, "seed", *seed)

	title := fmt.Sprintf("%s vs %s", black, white)
	bar := terminal.NewBar(cfg.Games, title)

	var running arena.Summary
	summary, err := arena.Run(cfg, func(_ int, result arena.GameResult) {
		running.Add(result)
		bar.Describe(fmt.Sprintf("%s (%s)", title, running.Score()))
		bar.Add(1)
	})
	bar.Close()
	fmt.Println()

	if err != nil {
		slog.Error("Arena failed", "error", err)
		os.Exit(1)
	}

	renderer := terminal.NewRenderer(!*noColor)
	percentage := func(n int) float64 {
		return 100 * float64(n) / float64(summary.Games)
	}

	fmt.Printf("%s (%s): %s\n", renderer.Side(models.BLACK), black,
		renderer.Good(fmt.Sprintf("%d wins (%.1f%%)", summary.BlackWins, percentage(summary.BlackWins))))
	fmt.Printf("%s (%s): %s\n", renderer.Side(models.WHITE), white,
		renderer.Bad(fmt.Sprintf("%d wins (%.1f%%)", summary.WhiteWins, percentage(summary.WhiteWins))))
	fmt.Printf("draws: %s\n", renderer.Neutral(fmt.Sprintf("%d (%.1f%%)", summary.Draws, percentage(summary.Draws))))
	fmt.Printf("average discs: %.1f - %.1f\n",
		float64(summary.BlackDiscs)/float64(summary.Games),
		float64(summary.WhiteDiscs)/float64(summary.Games))
}
