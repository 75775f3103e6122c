package mcts

// Config configures an mcts.Tree. Zero value is not valid; use
// DefaultConfig and override as needed.
type Config struct {
	// CPuct is the PUCT exploration constant (spec default 1.0).
	CPuct float32

	// Iterations is the number of simulations run per NextPosition
	// call (spec default 1600).
	Iterations int

	// ExplorePlies: exploration-mode sampling (proportional to visit
	// count) is only used when the caller passes Explore=true and
	// fewer than this many plies have been played (spec default 10).
	ExplorePlies int

	// NoiseSource is sampled once per freshly built root when root
	// noise is enabled (explore mode) and mixed into priors:
	// 0.8*P + 0.2*eta. The mixed priors are inherited on tree reuse,
	// never re-sampled. NewTree substitutes UniformNoise{} when nil.
	// Not serializable (it's an interface over a live generator), so
	// it's excluded from the MetaData JSON sidecar and must be
	// reattached by the caller after LoadMeta.
	NoiseSource NoiseSource `json:"-"`

	// VirtualLoss is the per-selection pessimistic bias applied
	// during parallel search (spec default 1).
	VirtualLoss uint32

	// BatchSize bounds how many leaves a parallel worker pool queues
	// per evaluator invocation (spec default 8).
	BatchSize int

	// Workers is the fixed worker-pool size for parallel search
	// (default: number of hardware threads, capped by MaxWorkers).
	Workers int
}

// MaxWorkers caps the default worker-pool size.
const MaxWorkers = 64

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		CPuct:        1.0,
		Iterations:   1600,
		ExplorePlies: 10,
		NoiseSource:  UniformNoise{},
		VirtualLoss:  1,
		BatchSize:    8,
	}
}
