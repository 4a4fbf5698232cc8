package fibonacci

import (
	"context"
	"math/big"

	apperrors "github.com/fibseq/fibseq/internal/errors"
	"github.com/fibseq/fibseq/internal/progress"
)

// NaiveRecursiveCalculator is the textbook unguarded recursion:
//
//	F(n) = F(n-1) + F(n-2)
//
// It performs O(2^n) work and exists purely as an educational reference and
// as an independent oracle for the other strategies at small indices. Inputs
// above MaxNaiveRecursionIndex are rejected with a validation error; this is
// a contract, not a soft warning, because a call at n=50 would run for hours.
//
// Never use this as a production path.
type NaiveRecursiveCalculator struct{}

// Name returns the strategy description.
func (c *NaiveRecursiveCalculator) Name() string {
	return "Naive Recursive (O(2^n), Educational)"
}

// CalculateCore runs the exponential recursion. Cancellation is checked at
// every node of the call tree; the result fits in a uint64 for all accepted
// inputs but is returned as *big.Int for interface uniformity.
func (c *NaiveRecursiveCalculator) CalculateCore(ctx context.Context, reportProgress progress.ProgressCallback, n uint64, opts Options) (*big.Int, error) {
	if n > MaxNaiveRecursionIndex {
		return nil, apperrors.NewValidationError("n",
			"naive recursion is O(2^n) and unsuitable beyond %d, got %d (use iterative or doubling)",
			MaxNaiveRecursionIndex, n)
	}

	result, err := c.recurse(ctx, n)
	if err != nil {
		return nil, err
	}

	reportProgress(1.0)
	return new(big.Int).SetUint64(result), nil
}

func (c *NaiveRecursiveCalculator) recurse(ctx context.Context, n uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if n <= 1 {
		return n, nil
	}
	a, err := c.recurse(ctx, n-1)
	if err != nil {
		return 0, err
	}
	b, err := c.recurse(ctx, n-2)
	if err != nil {
		return 0, err
	}
	return a + b, nil
}
