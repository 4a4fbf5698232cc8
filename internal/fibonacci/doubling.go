package fibonacci

import (
	"context"
	"math/big"
	"math/bits"

	apperrors "github.com/fibseq/fibseq/internal/errors"
	"github.com/fibseq/fibseq/internal/progress"
)

// FastDoublingCalculator computes F(n) in O(log n) big.Int operations using
// the doubling identities:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)² + F(k)²
//
// Each doubling step performs one multiplication and two squarings. Once the
// operands exceed Options.ParallelThreshold bits, the three operations are
// executed concurrently; below the threshold goroutine overhead dominates
// and the step runs sequentially.
type FastDoublingCalculator struct{}

// Name returns the strategy description.
func (c *FastDoublingCalculator) Name() string {
	return "Fast Doubling (O(log n), Parallel)"
}

// CalculateCore walks the bits of n from most to least significant,
// maintaining the pair (F(k), F(k+1)). One progress step is reported per bit.
func (c *FastDoublingCalculator) CalculateCore(ctx context.Context, reportProgress progress.ProgressCallback, n uint64, opts Options) (*big.Int, error) {
	if n <= 1 {
		reportProgress(1.0)
		return new(big.Int).SetUint64(n), nil
	}

	threshold := opts.parallelThreshold()

	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)
	t3 := new(big.Int)
	t4 := new(big.Int)

	totalSteps := bits.Len64(n)
	for i := totalSteps - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.WrapError(err, "fast doubling canceled at bit %d", i)
		}

		// t3 = 2*F(k+1) - F(k)
		t3.Lsh(fk1, 1)
		t3.Sub(t3, fk)

		// Each goroutine writes a distinct temporary; fk, fk1 and t3 are
		// read-only during the parallel section.
		if threshold > 0 && fk1.BitLen() > threshold {
			err := executeParallel3(ctx,
				func() error { t1.Mul(fk, t3); return nil },   // F(2k)
				func() error { t2.Mul(fk1, fk1); return nil }, // F(k+1)²
				func() error { t4.Mul(fk, fk); return nil },   // F(k)²
			)
			if err != nil {
				return nil, err
			}
			t2.Add(t2, t4) // F(2k+1)
		} else {
			t1.Mul(fk, t3)   // F(2k)
			t4.Mul(fk, fk)   // F(k)²
			t2.Mul(fk1, fk1) // F(k+1)²
			t2.Add(t2, t4)   // F(2k+1)
		}

		fk.Set(t1)
		fk1.Set(t2)

		// If the bit is set, advance the pair: (F(2k+1), F(2k+2)).
		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			fk.Set(fk1)
			fk1.Set(t1)
		}

		progress.ReportStepProgress(reportProgress, totalSteps-i, totalSteps)
	}

	return fk, nil
}
