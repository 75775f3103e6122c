package mcts

import "errors"

// ErrUnexpectedHistory is returned by NextPosition when asked to build
// a fresh root but the board's move history doesn't match the side's
// expected ply (0 for black, 1 for white). This indicates the driver
// called the policy out of turn — a programmer error.
var ErrUnexpectedHistory = errors.New("mcts: unexpected move history for side to move")
