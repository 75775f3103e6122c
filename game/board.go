package game

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Board is mutable, single-owner game state for one game in progress.
// It is not safe for concurrent use; callers that need to share a
// position across goroutines must Deepcopy it first (see mcts.Tree's
// per-simulation deep copies).
type Board struct {
	config GameConfig

	moves []Move

	// cells holds the color at each occupied position, keyed by
	// Position. order preserves insertion order so that iteration
	// (e.g. Snapshot.String) matches the order moves were played.
	cells map[Position]Color
	order []Position
}

// NewBoard creates an empty board for the given configuration.
func NewBoard(config GameConfig) *Board {
	return &Board{
		config: config,
		cells:  make(map[Position]Color),
	}
}

// Config returns the board's configuration.
func (b *Board) Config() GameConfig { return b.config }

// Moves returns the ordered sequence of applied moves. The returned
// slice is owned by the board and must not be mutated.
func (b *Board) Moves() []Move { return b.moves }

// nextAvailableRow returns the lowest empty row (largest x) in the
// given column, or -1 if the column is full.
func (b *Board) nextAvailableRow(column int) int {
	for x := b.config.Rows - 1; x >= 0; x-- {
		if _, occupied := b.cells[Position{X: x, Y: column}]; !occupied {
			return x
		}
	}
	return -1
}

// NextAvailableRow returns the lowest empty row in column, and whether
// the column has room left at all.
func (b *Board) NextAvailableRow(column int) (row int, ok bool) {
	r := b.nextAvailableRow(column)
	return r, r != -1
}

// LegalPositions returns, for each column, the lowest empty row. The
// result is empty iff the board is full.
func (b *Board) LegalPositions() []Position {
	var legal []Position
	for c := 0; c < b.config.Columns; c++ {
		if r := b.nextAvailableRow(c); r != -1 {
			legal = append(legal, Position{X: r, Y: c})
		}
	}
	return legal
}

// isMoveLegal checks gravity and emptiness without mutating the board.
func (b *Board) isMoveLegal(m Move) bool {
	if _, occupied := b.cells[m.Position]; occupied {
		return false
	}
	if m.Position.X == b.config.Rows-1 {
		return true
	}
	_, below := b.cells[Position{X: m.Position.X + 1, Y: m.Position.Y}]
	return below
}

// Apply validates and applies a move, appending it to history. It
// fails with ErrIllegalMove if gravity, emptiness or color is
// violated.
func (b *Board) Apply(m Move) error {
	if m.Color != Black && m.Color != White {
		return errors.Wrapf(ErrIllegalMove, "move color must be black or white, got %v", m.Color)
	}
	if !b.isMoveLegal(m) {
		return errors.Wrapf(ErrIllegalMove, "move %v is not legal", m)
	}
	b.moves = append(b.moves, m)
	if _, already := b.cells[m.Position]; !already {
		b.order = append(b.order, m.Position)
	}
	b.cells[m.Position] = m.Color
	return nil
}

// WinnerAfterLastMove assumes the position before the last move had
// no winner. It returns the color of a four-in-a-row through the last
// move, NA if the board is now full with no winner, or (false) if the
// game continues.
func (b *Board) WinnerAfterLastMove() (winner Color, found bool) {
	if len(b.moves) == 0 {
		return NA, false
	}
	last := b.moves[len(b.moves)-1]
	color := last.Color
	rows, columns := b.config.Rows, b.config.Columns

	countDir := func(dx, dy int) int {
		x, y := last.Position.X, last.Position.Y
		n := 0
		for {
			x += dx
			y += dy
			if x < 0 || x >= rows || y < 0 || y >= columns {
				return n
			}
			if b.cells[Position{X: x, Y: y}] != color {
				return n
			}
			n++
		}
	}

	left := countDir(0, -1)
	right := countDir(0, 1)
	if left+right+1 >= 4 {
		return color, true
	}

	down := countDir(1, 0)
	if down+1 >= 4 {
		return color, true
	}

	leftDown := countDir(1, -1)
	rightUp := countDir(-1, 1)
	if leftDown+rightUp+1 >= 4 {
		return color, true
	}

	leftUp := countDir(-1, -1)
	rightDown := countDir(1, 1)
	if leftUp+rightDown+1 >= 4 {
		return color, true
	}

	if len(b.cells) == rows*columns {
		return NA, true
	}

	return NA, false
}

// Snapshot returns an immutable view of the board's position map. If
// deep is true, the view's backing map is copied so it remains valid
// across later board mutation; if false, the view is only valid while
// the board is not mutated.
func (b *Board) Snapshot(deep bool) Snapshot {
	if !deep {
		return Snapshot{config: b.config, cells: b.cells, order: b.order}
	}
	cells := make(map[Position]Color, len(b.cells))
	for k, v := range b.cells {
		cells[k] = v
	}
	order := make([]Position, len(b.order))
	copy(order, b.order)
	return Snapshot{config: b.config, cells: cells, order: order}
}

// Deepcopy returns an independent copy of the board, required because
// sibling MCTS simulations share the root board.
func (b *Board) Deepcopy() *Board {
	cp := &Board{
		config: b.config,
		moves:  make([]Move, len(b.moves)),
		cells:  make(map[Position]Color, len(b.cells)),
		order:  make([]Position, len(b.order)),
	}
	copy(cp.moves, b.moves)
	copy(cp.order, b.order)
	for k, v := range b.cells {
		cp.cells[k] = v
	}
	return cp
}

// Draw writes an ASCII rendering of the board to w, in the spirit of
// the original source's board-plotting helper.
func (b *Board) Draw(w io.Writer) {
	fmt.Fprint(w, "    ")
	for j := 0; j < b.config.Columns; j++ {
		fmt.Fprintf(w, "%d ", j)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "    ")
	for j := 0; j < b.config.Columns; j++ {
		fmt.Fprint(w, "_ ")
	}
	fmt.Fprintln(w)
	for i := 0; i < b.config.Rows; i++ {
		fmt.Fprintf(w, "%2d: ", i)
		for j := 0; j < b.config.Columns; j++ {
			switch b.cells[Position{X: i, Y: j}] {
			case White:
				fmt.Fprint(w, "o ")
			case Black:
				fmt.Fprint(w, "x ")
			default:
				fmt.Fprint(w, "  ")
			}
		}
		fmt.Fprintln(w)
	}
}
