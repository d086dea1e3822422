package game

import (
	"errors"
	"fmt"

	"github.com/lk16/flippy/reversi/internal/models"
	"github.com/lk16/flippy/reversi/internal/opponent"
)

const (
	// Human is the side played by the person in front of the board.
	Human = models.BLACK

	// Computer is the side played by the opponent policy.
	Computer = models.WHITE

	// PiecesPerSide is the size of the reserve each side starts a game with.
	PiecesPerSide = 32
)

// ErrGameStarted is returned when changing the difficulty after the first move.
var ErrGameStarted = errors.New("game already started")

// Tallies are the cumulative results over all games of a session.
type Tallies struct {
	PlayerWins int `json:"player_wins"`
	CPUWins    int `json:"cpu_wins"`
	Draws      int `json:"draws"`
}

// Games returns the number of finished games.
func (t Tallies) Games() int {
	return t.PlayerWins + t.CPUWins + t.Draws
}

// Score is the disc count of both sides.
type Score struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Supply is the number of unplaced pieces each side has left.
type Supply struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Result describes a resolved move.
type Result struct {
	Move    models.Move    `json:"move"`
	Flipped []models.Coord `json:"flipped"`
	Event   Event          `json:"event"`

	// Next is the side to move, EMPTY once the game is over.
	Next models.Cell `json:"next"`

	// Passed is the side that has to skip its turn, EMPTY if nobody passes.
	Passed models.Cell `json:"passed"`

	Outcome Outcome `json:"outcome"`
	Score   Score   `json:"score"`
}

// Session is a series of games between the human and the computer.
// It is not safe for concurrent use; callers serialise access.
type Session struct {
	board      *models.Board
	turn       models.Cell
	first      models.Cell
	state      State
	moveCount  int
	difficulty opponent.Difficulty
	policy     *opponent.Policy
	tallies    Tallies
	outcome    Outcome
	supply     Supply
	history    []models.Move
}

// NewSession creates a session with its first game ready. The human moves first.
func NewSession(difficulty opponent.Difficulty) (*Session, error) {
	policy, err := opponent.NewPolicy(difficulty)
	if err != nil {
		return nil, err
	}

	s := &Session{
		difficulty: difficulty,
		policy:     policy,
	}

	if err = s.startGame(Human); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Session) startGame(first models.Cell) error {
	board, err := models.NewBoardFor(first)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	s.board = board
	s.first = first
	s.turn = first
	s.state = AwaitingFirstMove
	s.moveCount = 0
	s.outcome = NoOutcome
	s.supply = Supply{Black: PiecesPerSide, White: PiecesPerSide}
	s.history = make([]models.Move, 0)
	return nil
}

// Board returns a copy of the current board.
func (s *Session) Board() *models.Board {
	return s.board.Clone()
}

// Turn returns the side to move, EMPTY once the game is over.
func (s *Session) Turn() models.Cell {
	return s.turn
}

// FirstMover returns the side that opened the current game.
func (s *Session) FirstMover() models.Cell {
	return s.first
}

// State returns the lifecycle phase of the current game.
func (s *Session) State() State {
	return s.state
}

// MoveCount returns the number of placements in the current game.
func (s *Session) MoveCount() int {
	return s.moveCount
}

// Difficulty returns the difficulty of the computer opponent.
func (s *Session) Difficulty() opponent.Difficulty {
	return s.difficulty
}

// Tallies returns the cumulative results.
func (s *Session) Tallies() Tallies {
	return s.tallies
}

// Outcome returns the outcome of the current game, NoOutcome until it is over.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Supply returns the remaining reserve of side.
func (s *Session) Supply(side models.Cell) int {
	switch side {
	case models.BLACK:
		return s.supply.Black
	case models.WHITE:
		return s.supply.White
	default:
		return 0
	}
}

// History returns the placements and passes of the current game.
func (s *Session) History() []models.Move {
	return append([]models.Move{}, s.history...)
}

// Score returns the current disc counts.
func (s *Session) Score() Score {
	return Score{
		Black: s.board.CountPieces(models.BLACK),
		White: s.board.CountPieces(models.WHITE),
	}
}

// LegalMoves returns the legal moves of the side to move.
func (s *Session) LegalMoves() []models.Coord {
	if s.state == Terminal {
		return []models.Coord{}
	}
	return s.board.LegalMoves(s.turn)
}

// SetDifficulty changes the opponent. This is only allowed before the first move of a game.
func (s *Session) SetDifficulty(difficulty opponent.Difficulty) error {
	if s.state != AwaitingFirstMove {
		return fmt.Errorf("%w: cannot change difficulty", ErrGameStarted)
	}

	policy, err := opponent.NewPolicy(difficulty)
	if err != nil {
		return err
	}

	s.difficulty = difficulty
	s.policy = policy
	return nil
}

// SubmitMove plays a move for the human side.
func (s *Session) SubmitMove(row, col int) (Result, error) {
	return s.play(Human, row, col)
}

// RequestOpponentMove lets the computer pick and play a move.
func (s *Session) RequestOpponentMove(rng opponent.Rand) (Result, error) {
	if err := s.checkTurn(Computer); err != nil {
		return Result{}, err
	}

	move, ok := s.policy.SelectMove(s.board, Computer, rng)
	if !ok {
		return s.forcePass(Computer), nil
	}

	return s.play(Computer, move.Row, move.Col)
}

// Reset starts the next game. The winner of the previous game moves second; after a draw,
// an abandoned game or on the first game the human starts. Unless sameDifficulty is set the
// difficulty returns to the default.
func (s *Session) Reset(sameDifficulty bool) error {
	first := Human
	if s.state == Terminal && s.outcome == Win {
		first = Computer
	}

	if !sameDifficulty {
		policy, err := opponent.NewPolicy(opponent.DefaultDifficulty)
		if err != nil {
			return err
		}
		s.difficulty = opponent.DefaultDifficulty
		s.policy = policy
	}

	return s.startGame(first)
}

func (s *Session) checkTurn(side models.Cell) error {
	if s.state == Terminal {
		return fmt.Errorf("%w: game is over", models.ErrWrongTurn)
	}

	if s.turn != side {
		return fmt.Errorf("%w: %s to move", models.ErrWrongTurn, s.turn)
	}

	return nil
}

// play validates and applies a move, then resolves whose turn it is.
// Nothing changes when an error is returned.
func (s *Session) play(side models.Cell, row, col int) (Result, error) {
	if err := s.checkTurn(side); err != nil {
		return Result{}, err
	}

	flipped, err := s.board.ApplyMove(row, col, side)
	if err != nil {
		return Result{}, err
	}

	move := models.Move{Coord: models.Coord{Row: row, Col: col}, Side: side}

	s.moveCount++
	s.state = InProgress
	s.history = append(s.history, move)
	s.takePiece(side)

	result := s.resolve(side)
	result.Move = move
	result.Flipped = flipped
	return result, nil
}

func (s *Session) takePiece(side models.Cell) {
	switch side {
	case models.BLACK:
		s.supply.Black = max(s.supply.Black-1, 0)
	case models.WHITE:
		s.supply.White = max(s.supply.White-1, 0)
	}
}

// resolve decides who moves after mover placed a disc.
func (s *Session) resolve(mover models.Cell) Result {
	next := mover.Opponent()

	if s.board.HasAnyLegalMove(next) {
		s.turn = next
		return Result{Event: TurnChanged, Next: next, Score: s.Score()}
	}

	if s.board.HasAnyLegalMove(mover) {
		s.turn = mover
		s.history = append(s.history, models.Move{Side: next, Pass: true})
		return Result{Event: Passed, Next: mover, Passed: next, Score: s.Score()}
	}

	return s.finish()
}

// forcePass handles a side to move without legal moves. Turn resolution prevents this,
// but a restored session may still be in that position.
func (s *Session) forcePass(side models.Cell) Result {
	other := side.Opponent()

	if !s.board.HasAnyLegalMove(other) {
		result := s.finish()
		result.Move = models.Move{Side: side, Pass: true}
		return result
	}

	s.turn = other
	s.history = append(s.history, models.Move{Side: side, Pass: true})

	return Result{
		Move:   models.Move{Side: side, Pass: true},
		Event:  Passed,
		Next:   other,
		Passed: side,
		Score:  s.Score(),
	}
}

func (s *Session) finish() Result {
	score := s.Score()

	// Human plays black.
	human, computer := score.Black, score.White

	switch {
	case human > computer:
		s.outcome = Win
		s.tallies.PlayerWins++
	case human < computer:
		s.outcome = Loss
		s.tallies.CPUWins++
	default:
		s.outcome = Draw
		s.tallies.Draws++
	}

	s.state = Terminal
	s.turn = models.EMPTY

	return Result{Event: GameOver, Next: models.EMPTY, Outcome: s.outcome, Score: score}
}
