// Package mcts implements the AlphaGo-Zero-style search described in
// spec.md §4: node construction with PUCT selection, simulation,
// backup, root-move selection, tree reuse across plies, optional root
// noise, and a parallel search mode with virtual loss.
package mcts

import (
	"github.com/alphabeth/c4zero/eval"
	"github.com/alphabeth/c4zero/game"
	distrand "golang.org/x/exp/rand"
)

// Tree is a single-owner search tree for one side of one game. Its
// root always represents the position where `color` is to move at the
// moment NextPosition is entered (spec.md §4.6).
type Tree struct {
	color     game.Color
	evaluator eval.Evaluator
	cfg       Config
	rand      *distrand.Rand

	root  *Node
	board *game.Board
}

// NewTree builds a tree for the given side, evaluator and config. seed
// drives exploration sampling only (root noise has its own source in
// cfg.NoiseSource); callers that need determinism (spec.md §8) should
// pin both.
func NewTree(color game.Color, ev eval.Evaluator, cfg Config, seed uint64) *Tree {
	if cfg.NoiseSource == nil {
		cfg.NoiseSource = UniformNoise{}
	}
	return &Tree{
		color:     color,
		evaluator: ev,
		cfg:       cfg,
		rand:      distrand.New(distrand.NewSource(seed)),
	}
}

// Color returns the side this tree plays.
func (t *Tree) Color() game.Color { return t.color }

// Root returns the current root node, or nil if none has been built
// yet (or the last game ended at the previous root).
func (t *Tree) Root() *Node { return t.root }

// Reset discards the tree's state, e.g. at the end of a game.
func (t *Tree) Reset() {
	t.root = nil
	t.board = nil
}

// buildOrReuseRoot realizes spec.md §4.6 steps: build a fresh root
// (validating history length) if none exists, otherwise promote the
// opponent's observed move if it is a live child, else rebuild. Root
// noise is only injected into a freshly built root when explore is
// true, matching the original's inject_noise_to_root = explore:
// competitive (non-exploring) inference is left deterministic.
func (t *Tree) buildOrReuseRoot(board *game.Board, explore bool) error {
	if t.root == nil {
		moves := board.Moves()
		switch t.color {
		case game.Black:
			if len(moves) != 0 {
				return ErrUnexpectedHistory
			}
		case game.White:
			if len(moves) != 1 {
				return ErrUnexpectedHistory
			}
		}
		return t.rebuildRoot(board, explore)
	}

	moves := board.Moves()
	last := moves[len(moves)-1].Position
	if child := t.root.childOf(last); child != nil {
		t.root = child
		t.board = board.Deepcopy()
		return nil
	}
	return t.rebuildRoot(board, explore)
}

func (t *Tree) rebuildRoot(board *game.Board, injectNoise bool) error {
	newBoard := board.Deepcopy()
	root, err := NewNode(newBoard, t.color, t.evaluator, t.cfg.NoiseSource, injectNoise)
	if err != nil {
		return err
	}
	t.root = root
	t.board = newBoard
	return nil
}

// promoteChosen promotes root.children[pos] to root, as the final step
// of NextPosition. If the chosen move ended the game, the edge is a
// terminal sentinel rather than a live node; the tree is reset since
// no further search will happen in this game.
func (t *Tree) promoteChosen(pos game.Position) {
	if child := t.root.childOf(pos); child != nil {
		t.root = child
		return
	}
	t.Reset()
}
