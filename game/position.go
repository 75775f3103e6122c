package game

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// moveRe parses the canonical move text format `<c>[@](<x>,<y>)`.
var moveRe = regexp.MustCompile(`^([bw])@?\(\s*(\d+),\s*(\d+)\)$`)

// Position is a cell on the board. x is the row, y is the column.
type Position struct {
	X, Y int
}

// String formats a position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Color is the three-valued tag used throughout the kernel. NONE means
// "tie" when reported as a winner; it is never a legal move color.
type Color uint8

const (
	NA Color = iota
	Black
	White
)

// String returns the single-letter wire form ('b' or 'w'), or "n/a"
// for NA.
func (c Color) String() string {
	switch c {
	case Black:
		return "b"
	case White:
		return "w"
	default:
		return "n/a"
	}
}

// Reverse swaps BLACK and WHITE. It panics if called on NA, mirroring
// the original source's assertion.
func (c Color) Reverse() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		panic("game: Reverse called on a non-playing color")
	}
}

// ParseColor parses a single-letter color code ('b' or 'w').
func ParseColor(s string) (Color, error) {
	switch s {
	case "b":
		return Black, nil
	case "w":
		return White, nil
	default:
		return NA, errors.Wrapf(ErrInvalidMoveString, "unknown color %q", s)
	}
}

// Move is a (Position, Color) pair. Color must never be NA.
type Move struct {
	Position Position
	Color    Color
}

// String renders the canonical form "<c>(<x>,<y>)", the exact inverse
// of ParseMove.
func (m Move) String() string {
	return fmt.Sprintf("%s%s", m.Color, m.Position)
}

// ParseMove is the exact inverse of Move.String, additionally
// accepting the "@" separator form (e.g. "b@(1,2)").
func ParseMove(s string) (Move, error) {
	matches := moveRe.FindStringSubmatch(s)
	if matches == nil {
		return Move{}, errors.Wrapf(ErrInvalidMoveString, "malformed move string %q", s)
	}
	color, err := ParseColor(matches[1])
	if err != nil {
		return Move{}, err
	}
	x, err := strconv.Atoi(matches[2])
	if err != nil {
		return Move{}, errors.Wrapf(ErrInvalidMoveString, "bad x in %q", s)
	}
	y, err := strconv.Atoi(matches[3])
	if err != nil {
		return Move{}, errors.Wrapf(ErrInvalidMoveString, "bad y in %q", s)
	}
	return Move{Position: Position{X: x, Y: y}, Color: color}, nil
}
