package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Sequence Boundaries
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MaxFibUint64 is the largest index whose Fibonacci number fits in a
	// uint64. F(93) = 12200160415121876738 < 2^64 - 1 < F(94). Calculations
	// up to this index take a table-free uint64 fast path.
	MaxFibUint64 = 93

	// MaxNaiveRecursionIndex is the hard input cap for the naive recursive
	// strategy. The recursion performs O(2^n) work; beyond roughly n=40 a
	// single call takes minutes, so larger indices are rejected with a
	// validation error instead of silently hanging.
	MaxNaiveRecursionIndex = 40
)

// ─────────────────────────────────────────────────────────────────────────────
// Performance Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultParallelThreshold is the default bit size threshold at which the
	// three big.Int multiplications of a doubling step are executed across
	// multiple goroutines. Below this threshold, the overhead of goroutine
	// creation exceeds the benefits of parallelism.
	//
	// Empirically determined: 4096 bits provides optimal performance on most
	// modern multi-core CPUs for Fibonacci calculations.
	DefaultParallelThreshold = 4096

	// linearProgressReports is the number of progress updates emitted over a
	// full run of the linear (iterative, memoized) strategies. Reporting every
	// iteration would flood the progress channel for large n.
	linearProgressReports = 100
)

// ─────────────────────────────────────────────────────────────────────────────
// Progress Reporting Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// FibonacciGrowthFactor is log2(phi), where phi ≈ 1.618 (golden ratio).
	// Used to estimate the bit length of F(n) without computing it.
	FibonacciGrowthFactor = 0.69424
)
