package mcts

import (
	"time"

	rng "github.com/leesper/go_rng"
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// NoiseSource draws a length-n vector, normalized to sum to 1, used to
// smooth root priors: P(a) = 0.8*P(a) + 0.2*eta(a). It is sampled
// exactly once per root construction and never re-sampled on tree
// reuse (spec.md §4.4 step 3, Open Question 3).
type NoiseSource interface {
	Sample(n int) []float32
}

// UniformNoise draws each component uniformly from [0,1) and
// normalizes to sum to 1. This is the exact algorithm spec.md §4.4
// step 3 describes, and the exact behavior of the original Python
// source (`np.random.uniform(0, 1, n)` then divide by sum). It is the
// default noise source.
type UniformNoise struct {
	// gen is lazily constructed per call so the zero value is usable
	// without an explicit seed (falls back to a time-derived one),
	// matching the teacher's per-search *rand.Rand that is seeded at
	// construction, not hidden as package-level state.
	gen *rng.UniformGenerator
}

// NewUniformNoise builds a uniform noise source seeded explicitly, so
// callers that need determinism (see spec.md §8 "Determinism") can
// pin it.
func NewUniformNoise(seed int64) UniformNoise {
	return UniformNoise{gen: rng.NewUniformGenerator(seed)}
}

// Sample implements NoiseSource.
func (u UniformNoise) Sample(n int) []float32 {
	gen := u.gen
	if gen == nil {
		gen = rng.NewUniformGenerator(time.Now().UnixNano())
	}
	draws := make([]float32, n)
	var sum float32
	for i := range draws {
		v := float32(gen.Float64Range(0, 1))
		draws[i] = v
		sum += v
	}
	if sum == 0 {
		// Degenerate draw (all zeros); fall back to a uniform
		// distribution rather than dividing by zero.
		even := float32(1) / float32(n)
		for i := range draws {
			draws[i] = even
		}
		return draws
	}
	for i := range draws {
		draws[i] /= sum
	}
	return draws
}

// dirichletAlpha is the symmetric Dirichlet concentration parameter
// used by DirichletNoise. Lower values push mass toward a few moves
// (closer to the "exploration shove" AlphaZero's root noise intends);
// this mirrors common AlphaZero implementations' choice for small
// action spaces.
const dirichletAlpha = 0.3

// DirichletNoise draws from a symmetric Dirichlet distribution, the
// canonical AlphaZero root-noise model. It is opt-in (see spec.md
// §4.9); the teacher repository computes a dirichletSample field via
// exactly this library (gonum.org/v1/gonum/stat/distmv.Dirichlet) but
// never wires it into node construction. This type finishes that
// wiring as an alternative to UniformNoise.
type DirichletNoise struct {
	seed uint64
}

// NewDirichletNoise builds a Dirichlet noise source seeded explicitly.
func NewDirichletNoise(seed uint64) DirichletNoise {
	return DirichletNoise{seed: seed}
}

// Sample implements NoiseSource.
func (d DirichletNoise) Sample(n int) []float32 {
	alpha := make([]float64, n)
	for i := range alpha {
		alpha[i] = dirichletAlpha
	}
	seed := d.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	dist := distmv.NewDirichlet(alpha, distrand.NewSource(seed))
	sample := dist.Rand(nil)

	out := make([]float32, n)
	for i, v := range sample {
		out[i] = float32(v)
	}
	return out
}
