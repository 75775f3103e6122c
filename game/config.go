package game

import "fmt"

// MaxBoardDim is the encoding invariant: rows and columns must each be
// strictly less than this.
const MaxBoardDim = 10

// GameConfig should be treated as immutable once constructed.
type GameConfig struct {
	Rows    int
	Columns int
}

// NewGameConfig validates and builds a GameConfig. The classic board
// is 6 rows by 7 columns.
func NewGameConfig(rows, columns int) GameConfig {
	if rows <= 0 || rows >= MaxBoardDim {
		panic(fmt.Sprintf("game: rows must be in (0, %d), got %d", MaxBoardDim, rows))
	}
	if columns <= 0 || columns >= MaxBoardDim {
		panic(fmt.Sprintf("game: columns must be in (0, %d), got %d", MaxBoardDim, columns))
	}
	return GameConfig{Rows: rows, Columns: columns}
}

// DefaultGameConfig is the standard 6x7 Connect Four board.
func DefaultGameConfig() GameConfig {
	return NewGameConfig(6, 7)
}

// String renders a short description, e.g. "Connect 4 Game Config (6x7)".
func (c GameConfig) String() string {
	return fmt.Sprintf("Connect 4 Game Config (%dx%d)", c.Rows, c.Columns)
}

// NewBoard creates a fresh, empty Board for this configuration.
func (c GameConfig) NewBoard() *Board {
	return NewBoard(c)
}

// ActionSpace is the number of neural-network output cells, rows*columns.
func (c GameConfig) ActionSpace() int {
	return c.Rows * c.Columns
}

// PositionToIndex maps a Position to its row-major neural network
// output index: idx = x*columns + y.
func (c GameConfig) PositionToIndex(p Position) int {
	return p.X*c.Columns + p.Y
}

// IndexToPosition is the inverse of PositionToIndex.
func (c GameConfig) IndexToPosition(idx int) Position {
	return Position{X: idx / c.Columns, Y: idx % c.Columns}
}
