// Package c4zero wires the game, eval, mcts and training packages into
// the end-user-facing pieces: the Policy abstraction a driver plays
// against, a self-play loop that produces training records, and the
// on-disk config format the cmd/ binaries read and write.
package c4zero

import (
	"math/rand"

	"github.com/alphabeth/c4zero/game"
	"github.com/pkg/errors"
)

// ErrGameOver is returned by NextPosition when asked to move on a
// board with no legal positions left.
var ErrGameOver = errors.New("c4zero: game is already over")

// Policy picks the next position to play for one color on one board.
// Implementations may hold search state across calls (MCTSPolicy) or
// be entirely stateless (RandomPolicy); either way a Policy instance
// is scoped to a single ongoing game.
type Policy interface {
	// NextPosition returns the position this policy's color plays next
	// given the board's current state. board is read-only.
	NextPosition(board *game.Board) (game.Position, error)

	// Name identifies the policy, e.g. for logging and result tallies.
	Name() string
}

// RandomPolicy picks uniformly among the legal positions. It is a
// useful baseline opponent and a bootstrap for self-play.
type RandomPolicy struct {
	color game.Color
	name  string
	rand  *rand.Rand
}

// NewRandomPolicy builds a RandomPolicy for color, seeded by seed.
func NewRandomPolicy(color game.Color, seed int64, name string) *RandomPolicy {
	if name == "" {
		name = "random_" + color.String()
	}
	return &RandomPolicy{color: color, name: name, rand: rand.New(rand.NewSource(seed))}
}

// Name implements Policy.
func (p *RandomPolicy) Name() string { return p.name }

// NextPosition implements Policy.
func (p *RandomPolicy) NextPosition(board *game.Board) (game.Position, error) {
	legal := board.LegalPositions()
	if len(legal) == 0 {
		return game.Position{}, ErrGameOver
	}
	return legal[p.rand.Intn(len(legal))], nil
}
