package models

import "errors"

var (
	// ErrInvalidCoordinate is returned for a row or column outside [0, 7].
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidMove is returned when a move does not capture anything or targets an occupied cell.
	ErrInvalidMove = errors.New("invalid move")

	// ErrWrongTurn is returned when a side moves while it is not its turn.
	ErrWrongTurn = errors.New("wrong turn")

	// ErrInvalidSide is returned when EMPTY or an unknown value is used as a side.
	ErrInvalidSide = errors.New("invalid side")

	// ErrInvalidBoard is returned when a board string cannot be parsed.
	ErrInvalidBoard = errors.New("invalid board")
)
