package c4zero

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alphabeth/c4zero/game"
)

// HumanPolicy asks a human for a column to play via r, re-prompting on
// invalid input (non-numeric, out of range, full column) rather than
// surfacing those as errors to the engine: a mistyped column is not a
// search failure.
type HumanPolicy struct {
	color game.Color
	name  string
	in    *bufio.Scanner
	out   io.Writer
}

// NewHumanPolicy builds a HumanPolicy for color, reading columns from
// in and writing prompts to out.
func NewHumanPolicy(color game.Color, in io.Reader, out io.Writer, name string) *HumanPolicy {
	if name == "" {
		name = "human_" + color.String()
	}
	return &HumanPolicy{color: color, name: name, in: bufio.NewScanner(in), out: out}
}

// Name implements Policy.
func (p *HumanPolicy) Name() string { return p.name }

// NextPosition implements Policy. It loops until the human supplies a
// column with room left, or the input stream is exhausted.
func (p *HumanPolicy) NextPosition(board *game.Board) (game.Position, error) {
	for {
		fmt.Fprint(p.out, "Column: ")
		if !p.in.Scan() {
			return game.Position{}, io.EOF
		}
		text := strings.TrimSpace(p.in.Text())
		column, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintln(p.out, "Unexpected input. Try again.")
			continue
		}
		if column < 0 || column >= board.Config().Columns {
			fmt.Fprintln(p.out, "Column out of range. Try again.")
			continue
		}
		row, ok := board.NextAvailableRow(column)
		if !ok {
			fmt.Fprintln(p.out, "This column is full. Try again.")
			continue
		}
		return game.Position{X: row, Y: column}, nil
	}
}
