package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestUniformEvaluatePolicySumsToOne(t *testing.T) {
	u := NewUniform(7)
	features := tensor.New(tensor.WithShape(1, 3, 1, 7), tensor.WithBacking(make([]float32, 21)))

	policy, value, err := u.Evaluate(features)
	require.NoError(t, err)
	assert.Equal(t, float32(0), value)

	var sum float32
	for _, p := range policy {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestUniformEvaluateRejectsNonPositiveActionSpace(t *testing.T) {
	u := NewUniform(0)
	_, _, err := u.Evaluate(nil)
	assert.ErrorIs(t, err, ErrEvaluatorFailure)
}

func TestUniformEvaluateBatch(t *testing.T) {
	u := NewUniform(4)
	f1 := tensor.New(tensor.WithShape(1, 3, 1, 4), tensor.WithBacking(make([]float32, 12)))
	f2 := tensor.New(tensor.WithShape(1, 3, 1, 4), tensor.WithBacking(make([]float32, 12)))

	policies, values, err := u.EvaluateBatch([]*tensor.Dense{f1, f2})
	require.NoError(t, err)
	assert.Len(t, policies, 2)
	assert.Len(t, values, 2)
}
