package c4zero

import (
	"io"

	"github.com/alphabeth/c4zero/eval"
	"github.com/alphabeth/c4zero/game"
	"github.com/alphabeth/c4zero/mcts"
	"github.com/hashicorp/go-multierror"
)

// MCTSPolicy wraps a sequential mcts.Tree as a Policy: each call to
// NextPosition reuses the tree's accumulated state across plies
// (spec.md §4.6), so the same instance must be used for the whole
// game.
type MCTSPolicy struct {
	color   game.Color
	name    string
	tree    *mcts.Tree
	explore bool
}

// NewMCTSPolicy builds a sequential MCTS policy for color.
func NewMCTSPolicy(color game.Color, ev eval.Evaluator, cfg mcts.Config, seed uint64, explore bool, name string) *MCTSPolicy {
	if name == "" {
		name = "mcts_" + color.String()
	}
	return &MCTSPolicy{
		color:   color,
		name:    name,
		tree:    mcts.NewTree(color, ev, cfg, seed),
		explore: explore,
	}
}

// Name implements Policy.
func (p *MCTSPolicy) Name() string { return p.name }

// NextPosition implements Policy.
func (p *MCTSPolicy) NextPosition(board *game.Board) (game.Position, error) {
	return p.tree.NextPosition(board, p.explore)
}

// ParallelMCTSPolicy is MCTSPolicy's worker-pool counterpart
// (spec.md §4.7). If the evaluator also implements io.Closer, Close
// tears it down; multiple close errors (e.g. one per pooled inference
// resource, as in the sequential engine's own evaluator-pool pattern)
// are aggregated rather than only the first being reported.
type ParallelMCTSPolicy struct {
	color   game.Color
	name    string
	tree    *mcts.Tree
	explore bool
	closers []io.Closer
}

// NewParallelMCTSPolicy builds a parallel-search MCTS policy for
// color. closers, if any, are torn down together on Close.
func NewParallelMCTSPolicy(color game.Color, ev eval.Evaluator, cfg mcts.Config, seed uint64, explore bool, name string, closers ...io.Closer) *ParallelMCTSPolicy {
	if name == "" {
		name = "mcts_par_" + color.String()
	}
	if c, ok := ev.(io.Closer); ok {
		closers = append(closers, c)
	}
	return &ParallelMCTSPolicy{
		color:   color,
		name:    name,
		tree:    mcts.NewTree(color, ev, cfg, seed),
		explore: explore,
		closers: closers,
	}
}

// Name implements Policy.
func (p *ParallelMCTSPolicy) Name() string { return p.name }

// NextPosition implements Policy.
func (p *ParallelMCTSPolicy) NextPosition(board *game.Board) (game.Position, error) {
	return p.tree.NextPositionParallel(board, p.explore)
}

// Close tears down any resources (e.g. a pooled evaluator) the policy
// was handed at construction, aggregating every close error instead of
// stopping at the first.
func (p *ParallelMCTSPolicy) Close() error {
	var errs error
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}
