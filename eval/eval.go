// Package eval defines the narrow interface the MCTS engine uses to
// query a neural evaluator, plus a reference implementation used by
// tests and by CLI drivers that have no trained model handy. This
// package intentionally has no opinion on network architecture or
// training; that is out of scope (see spec.md §1 Non-goals).
package eval

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// ErrEvaluatorFailure wraps any error returned by an Evaluator so
// callers can tell evaluator failures apart from engine-internal bugs.
// It is never swallowed by the engine: a search aborts immediately
// when this occurs, leaving prior backups intact.
var ErrEvaluatorFailure = errors.New("eval: evaluator failure")

// Evaluator is a pure function (modulo internal weights) from an
// encoded board position to a policy over cells and a scalar value.
// Implementations must be safe for concurrent invocation from
// multiple workers (see spec.md §5).
type Evaluator interface {
	// Evaluate takes features shaped (1, 3, rows, columns) and
	// returns policy shaped (1, rows*columns) and value in [-1, 1]
	// from the perspective of the side to move at the queried
	// position. Sum of policy over legal cells need not equal 1;
	// illegal cells may hold any value.
	Evaluate(features *tensor.Dense) (policy []float32, value float32, err error)
}

// BatchEvaluator is an optional capability an Evaluator may implement
// when it can process several leaves in one underlying call (e.g. a
// single forward pass over a stacked tensor). Parallel search detects
// this interface and batches up to Config.BatchSize leaves per call;
// evaluators that only implement Evaluator are called once per leaf
// instead.
type BatchEvaluator interface {
	EvaluateBatch(features []*tensor.Dense) (policies [][]float32, values []float32, err error)
}

// Uniform is a reference Evaluator returning a uniform policy and a
// zero value. It defines no learned behavior; it exists so the engine
// can be exercised, tested, and golden-vector pinned without a
// trained model.
type Uniform struct {
	ActionSpace int
}

// NewUniform builds a Uniform evaluator for the given action space
// (rows * columns).
func NewUniform(actionSpace int) *Uniform {
	return &Uniform{ActionSpace: actionSpace}
}

// Evaluate implements Evaluator.
func (u *Uniform) Evaluate(features *tensor.Dense) (policy []float32, value float32, err error) {
	if u.ActionSpace <= 0 {
		return nil, 0, errors.Wrap(ErrEvaluatorFailure, "uniform evaluator: non-positive action space")
	}
	policy = make([]float32, u.ActionSpace)
	p := float32(1) / float32(u.ActionSpace)
	for i := range policy {
		policy[i] = p
	}
	return policy, 0, nil
}

// EvaluateBatch implements BatchEvaluator by evaluating each feature
// tensor independently; Uniform has no real batched compute to share
// across leaves, but implementing this exercises the parallel search
// path that prefers BatchEvaluator when available.
func (u *Uniform) EvaluateBatch(features []*tensor.Dense) (policies [][]float32, values []float32, err error) {
	policies = make([][]float32, len(features))
	values = make([]float32, len(features))
	for i, f := range features {
		p, v, err := u.Evaluate(f)
		if err != nil {
			return nil, nil, err
		}
		policies[i] = p
		values[i] = v
	}
	return policies, values, nil
}
