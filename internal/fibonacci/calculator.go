package fibonacci

import (
	"context"
	"math/big"

	"github.com/fibseq/fibseq/internal/progress"
)

// Options carries the tuning knobs shared by all strategies. The zero value
// selects sensible defaults.
type Options struct {
	// ParallelThreshold is the operand bit size above which the fast doubling
	// strategy runs its per-step multiplications concurrently. Zero applies
	// DefaultParallelThreshold; negative disables parallelism entirely.
	ParallelThreshold int
}

// parallelThreshold resolves the effective threshold for the options.
func (o Options) parallelThreshold() int {
	if o.ParallelThreshold == 0 {
		return DefaultParallelThreshold
	}
	return o.ParallelThreshold
}

// coreCalculator is the strategy interface implemented by each algorithm.
// CalculateCore performs the raw computation; validation, the uint64 fast
// path, and progress fan-out live in the FibCalculator wrapper.
type coreCalculator interface {
	// Name returns a human-readable strategy description.
	Name() string
	// CalculateCore computes F(n), reporting completion fractions through
	// reportProgress (never nil) and honoring ctx cancellation.
	CalculateCore(ctx context.Context, reportProgress progress.ProgressCallback, n uint64, opts Options) (*big.Int, error)
}

// Calculator is the public calculation interface. Implementations are safe
// for concurrent use.
type Calculator interface {
	// Name returns a human-readable strategy description.
	Name() string
	// Calculate computes F(n). Progress updates tagged with calcIndex are
	// sent to progressChan when non-nil; sends never block.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error)
}

// FibCalculator wraps a coreCalculator with the shared execution scaffolding:
// context checks, the uint64 fast path for small indices, and observer-based
// progress reporting.
type FibCalculator struct {
	core coreCalculator
}

// NewCalculator wraps a strategy implementation in the standard scaffolding.
func NewCalculator(core coreCalculator) Calculator {
	return &FibCalculator{core: core}
}

// Name returns the wrapped strategy's description.
func (c *FibCalculator) Name() string { return c.core.Name() }

// Calculate computes F(n), forwarding progress through an optional channel.
func (c *FibCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error) {
	subject := progress.NewProgressSubject()
	if progressChan != nil {
		subject.Register(progress.NewChannelObserver(progressChan))
	}
	return c.CalculateWithObservers(ctx, subject, calcIndex, n, opts)
}

// CalculateWithObservers computes F(n), notifying the subject's observers of
// progress. The observer set is frozen at call time.
func (c *FibCalculator) CalculateWithObservers(ctx context.Context, subject *progress.ProgressSubject, calcIndex int, n uint64, opts Options) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reportProgress := subject.Freeze(calcIndex)

	// Small indices fit in a uint64; skip the big.Int machinery entirely.
	if n <= MaxFibUint64 {
		result := fibUint64(n)
		reportProgress(1.0)
		return new(big.Int).SetUint64(result), nil
	}

	return c.core.CalculateCore(ctx, reportProgress, n, opts)
}

// fibUint64 computes F(n) for n <= MaxFibUint64 with a plain forward pass.
func fibUint64(n uint64) uint64 {
	if n <= 1 {
		return n
	}
	a, b := uint64(0), uint64(1)
	for i := uint64(2); i <= n; i++ {
		a, b = b, a+b
	}
	return b
}

// EstimateBitLen approximates the bit length of F(n) from the golden-ratio
// growth rate. Used for memory estimates and progress scaling; accurate to
// within one bit for n >= 2.
func EstimateBitLen(n uint64) uint64 {
	return uint64(float64(n)*FibonacciGrowthFactor) + 1
}
