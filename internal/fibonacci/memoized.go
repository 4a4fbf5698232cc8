package fibonacci

import (
	"context"
	"math/big"
	"sync"

	apperrors "github.com/fibseq/fibseq/internal/errors"
	"github.com/fibseq/fibseq/internal/progress"
)

// MemoizedCalculator computes F(n) iteratively while retaining every computed
// term in an index-keyed cache. Repeated calls within the lifetime of the
// instance resume from the highest cached index instead of recomputing from
// zero, trading O(n) space for the avoided work.
//
// The cache has no eviction: entries are immutable, monotonically reusable,
// and small relative to the result being computed. A mutex guards the cache
// so a single instance may serve concurrent callers.
type MemoizedCalculator struct {
	mu        sync.Mutex
	cache     map[uint64]*big.Int
	maxCached uint64
}

// NewMemoizedCalculator creates a calculator with the base cases pre-seeded.
func NewMemoizedCalculator() *MemoizedCalculator {
	return &MemoizedCalculator{
		cache: map[uint64]*big.Int{
			0: big.NewInt(0),
			1: big.NewInt(1),
		},
		maxCached: 1,
	}
}

// Name returns the strategy description.
func (c *MemoizedCalculator) Name() string {
	return "Memoized (O(n), Cached)"
}

// CacheSize returns the number of cached terms. Exposed for observability.
func (c *MemoizedCalculator) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// CalculateCore computes F(n), extending the cache forward from the highest
// previously computed index. Returned values are copies; cache entries are
// never aliased to callers.
func (c *MemoizedCalculator) CalculateCore(ctx context.Context, reportProgress progress.ProgressCallback, n uint64, opts Options) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache[n]; ok {
		reportProgress(1.0)
		return new(big.Int).Set(cached), nil
	}

	start := c.maxCached
	span := n - start
	interval := span / linearProgressReports
	if interval == 0 {
		interval = 1
	}

	for i := start + 1; i <= n; i++ {
		term := new(big.Int).Add(c.cache[i-1], c.cache[i-2])
		c.cache[i] = term
		c.maxCached = i

		if (i-start)%interval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, apperrors.WrapError(err, "memoized pass canceled at index %d", i)
			}
			reportProgress(float64(i-start) / float64(span))
		}
	}

	reportProgress(1.0)
	return new(big.Int).Set(c.cache[n]), nil
}
