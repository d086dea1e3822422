package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/lk16/flippy/reversi/internal/config"
	"github.com/lk16/flippy/reversi/internal/game"
	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/lk16/flippy/reversi/internal/opponent"
	"github.com/lk16/flippy/reversi/internal/terminal"
)

var errQuit = errors.New("quit")

type player struct {
	session  *game.Session
	renderer *terminal.Renderer
	input    *bufio.Scanner
	rng      *rand.Rand
}

func (p *player) prompt(question string) (string, error) {
	fmt.Print(question)

	if !p.input.Scan() {
		if err := p.input.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}

	answer := strings.TrimSpace(strings.ToLower(p.input.Text()))
	if answer == "q" || answer == "quit" {
		return "", errQuit
	}

	return answer, nil
}

func (p *player) showBoard() {
	hint := models.EMPTY
	if p.session.Turn() == game.Human {
		hint = game.Human
	}

	fmt.Println()
	for _, line := range p.renderer.Lines(p.session.Board(), hint) {
		fmt.Println(line)
	}

	score := p.session.Score()
	fmt.Printf("you (%s): %d, computer (%s): %d, difficulty: %s\n",
		p.renderer.Side(game.Human), score.Black, p.renderer.Side(game.Computer), score.White, p.session.Difficulty())
}

func (p *player) humanMove() (game.Result, error) {
	for {
		answer, err := p.prompt("Your move (e.g. d3, q to quit): ")
		if err != nil {
			return game.Result{}, err
		}

		coord, err := models.ParseField(answer)
		if err != nil {
			fmt.Println(p.renderer.Bad(err.Error()))
			continue
		}

		result, err := p.session.SubmitMove(coord.Row, coord.Col)
		if err != nil {
			fmt.Println(p.renderer.Bad(err.Error()))
			continue
		}

		return result, nil
	}
}

func (p *player) describe(result game.Result) {
	if !result.Move.Pass {
		fmt.Printf("%s plays %s, flipping %d\n", p.renderer.Side(result.Move.Side), result.Move.Field(), len(result.Flipped))
	}

	if result.Event == game.Passed {
		fmt.Println(p.renderer.Neutral(fmt.Sprintf("%s has no legal moves and passes", result.Passed)))
	}
}

func (p *player) playGame() error {
	for p.session.State() != game.Terminal {
		p.showBoard()

		var result game.Result
		var err error

		if p.session.Turn() == game.Human {
			result, err = p.humanMove()
		} else {
			result, err = p.session.RequestOpponentMove(p.rng)
		}

		if err != nil {
			return err
		}

		p.describe(result)
	}

	p.showBoard()

	switch p.session.Outcome() {
	case game.Win:
		fmt.Println(p.renderer.Good("You win!"))
	case game.Loss:
		fmt.Println(p.renderer.Bad("The computer wins."))
	default:
		fmt.Println(p.renderer.Neutral("It's a draw."))
	}

	tallies := p.session.Tallies()
	fmt.Printf("wins: %d, losses: %d, draws: %d\n", tallies.PlayerWins, tallies.CPUWins, tallies.Draws)
	return nil
}

// nextGame asks how to continue and resets the session.
func (p *player) nextGame() error {
	answer, err := p.prompt("Play again? [y = same difficulty, easy/medium/hard, q to quit]: ")
	if err != nil {
		return err
	}

	if answer == "" || answer == "y" || answer == "yes" {
		return p.session.Reset(true)
	}

	difficulty, err := opponent.ParseDifficulty(answer)
	if err != nil {
		fmt.Println(p.renderer.Bad(err.Error()))
		return p.nextGame()
	}

	if err = p.session.Reset(false); err != nil {
		return err
	}

	return p.session.SetDifficulty(difficulty)
}

func main() {
	config.SetLogLevel()

	difficultyName := flag.String("difficulty", opponent.DefaultDifficulty.String(), "difficulty of the computer (easy, medium or hard)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed of the computer")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()

	difficulty, err := opponent.ParseDifficulty(*difficultyName)
	if err != nil {
		slog.Error("Invalid difficulty", "error", err)
		os.Exit(1)
	}

	session, err := game.NewSession(difficulty)
	if err != nil {
		slog.Error("Failed to create session", "error", err)
		os.Exit(1)
	}

	p := &player{
		session:  session,
		renderer: terminal.NewRenderer(!*noColor),
		input:    bufio.NewScanner(os.Stdin),
		rng:      rand.New(rand.NewSource(*seed)), //nolint:gosec
	}

	for {
		if err = p.playGame(); err == nil {
			err = p.nextGame()
		}

		if errors.Is(err, errQuit) {
			return
		}

		if err != nil {
			slog.Error("Game failed", "error", err)
			os.Exit(1)
		}
	}
}
