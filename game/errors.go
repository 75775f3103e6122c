package game

import "errors"

// Sentinel error kinds the game kernel can raise. Callers should use
// errors.Is against these; raise sites wrap them with github.com/pkg/errors
// to attach a stack trace and context.
var (
	// ErrIllegalMove is returned when a move violates gravity, targets
	// an occupied cell, or falls off the board.
	ErrIllegalMove = errors.New("game: illegal move")

	// ErrBoardFull is returned when an MCTS node is constructed for a
	// position that has no legal moves left.
	ErrBoardFull = errors.New("game: board is full")

	// ErrInvalidMoveString is returned by ParseMove on malformed input.
	ErrInvalidMoveString = errors.New("game: invalid move string")

	// ErrInvalidStateString is returned by snapshot/training-record
	// parsers on malformed input.
	ErrInvalidStateString = errors.New("game: invalid state string")
)
