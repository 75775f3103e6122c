package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Snapshot is an immutable view over a board's position map,
// sufficient to encode features and to serialize training records.
// A snapshot made with Board.Snapshot(false) shares its backing map
// with the board and is only valid while the board is not mutated.
type Snapshot struct {
	config GameConfig
	cells  map[Position]Color
	order  []Position
}

// Config returns the snapshot's board configuration.
func (s Snapshot) Config() GameConfig { return s.config }

// Get returns the color at position, and whether it is present.
func (s Snapshot) Get(p Position) (Color, bool) {
	c, ok := s.cells[p]
	return c, ok
}

// String renders moves joined by '^' in insertion order. The empty
// snapshot is the empty string.
func (s Snapshot) String() string {
	if len(s.order) == 0 {
		return ""
	}
	moves := make([]string, 0, len(s.order))
	for _, pos := range s.order {
		moves = append(moves, Move{Position: pos, Color: s.cells[pos]}.String())
	}
	return strings.Join(moves, "^")
}

// ParseSnapshot is the exact inverse of Snapshot.String.
func ParseSnapshot(config GameConfig, s string) (Snapshot, error) {
	if s == "" {
		return Snapshot{config: config, cells: make(map[Position]Color)}, nil
	}
	parts := strings.Split(s, "^")
	cells := make(map[Position]Color, len(parts))
	order := make([]Position, 0, len(parts))
	for _, part := range parts {
		m, err := ParseMove(part)
		if err != nil {
			return Snapshot{}, errors.Wrapf(ErrInvalidStateString, "snapshot %q: %v", s, err)
		}
		if _, already := cells[m.Position]; !already {
			order = append(order, m.Position)
		}
		cells[m.Position] = m.Color
	}
	return Snapshot{config: config, cells: cells, order: order}, nil
}

// MoveCount returns the number of occupied cells in the snapshot.
func (s Snapshot) MoveCount() int { return len(s.order) }

// BoardView renders a compact ASCII drawing of the snapshot, mirroring
// the original source's `board_view`.
func (s Snapshot) BoardView() string {
	var sb strings.Builder
	for i := 0; i < s.config.Rows; i++ {
		fmt.Fprintf(&sb, "%2d: ", i)
		for j := 0; j < s.config.Columns; j++ {
			switch s.cells[Position{X: i, Y: j}] {
			case White:
				sb.WriteString("o ")
			case Black:
				sb.WriteString("x ")
			default:
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
