package fibonacci

import (
	"context"
	"math/big"

	apperrors "github.com/fibseq/fibseq/internal/errors"
	"github.com/fibseq/fibseq/internal/progress"
)

// IterativeCalculator computes F(n) with a single forward pass from index 2
// to n, holding only the last two terms. O(n) time, O(1) auxiliary space
// beyond the growing result itself. This is the canonical production
// strategy: no recursion depth, no cache, fully deterministic memory use.
type IterativeCalculator struct{}

// Name returns the strategy description.
func (c *IterativeCalculator) Name() string {
	return "Iterative (O(n), Constant Space)"
}

// CalculateCore performs the forward pass. Cancellation is checked at every
// progress interval so a multi-minute run aborts promptly.
func (c *IterativeCalculator) CalculateCore(ctx context.Context, reportProgress progress.ProgressCallback, n uint64, opts Options) (*big.Int, error) {
	if n <= 1 {
		reportProgress(1.0)
		return new(big.Int).SetUint64(n), nil
	}

	interval := n / linearProgressReports
	if interval == 0 {
		interval = 1
	}

	a := big.NewInt(0) // F(i-2)
	b := big.NewInt(1) // F(i-1)
	for i := uint64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a // b now holds F(i)

		if i%interval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, apperrors.WrapError(err, "iterative pass canceled at index %d", i)
			}
			reportProgress(float64(i) / float64(n))
		}
	}

	reportProgress(1.0)
	return b, nil
}
