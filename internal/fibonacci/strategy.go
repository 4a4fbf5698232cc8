package fibonacci

import (
	"context"
	"math/big"
	"strconv"
	"strings"

	apperrors "github.com/fibseq/fibseq/internal/errors"
)

// Strategy identifies a computation strategy. The iterative form is the
// canonical production path; the naive recursion exists only as a documented
// educational alternative.
type Strategy int

const (
	// StrategyIterative is the O(n) time, O(1) space forward pass.
	StrategyIterative Strategy = iota
	// StrategyMemoized is the O(n) pass with a persistent index-keyed cache.
	StrategyMemoized
	// StrategyNaiveRecursive is the O(2^n) textbook recursion, input-capped.
	StrategyNaiveRecursive
	// StrategyFastDoubling is the O(log n) doubling algorithm.
	StrategyFastDoubling
)

// String returns the factory key for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyIterative:
		return "iterative"
	case StrategyMemoized:
		return "memoized"
	case StrategyNaiveRecursive:
		return "naive"
	case StrategyFastDoubling:
		return "doubling"
	default:
		return "unknown"
	}
}

// ParseStrategy resolves a strategy from its factory key.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "iterative":
		return StrategyIterative, nil
	case "memoized":
		return StrategyMemoized, nil
	case "naive":
		return StrategyNaiveRecursive, nil
	case "doubling":
		return StrategyFastDoubling, nil
	default:
		return 0, apperrors.NewConfigError("unknown strategy %q (valid: iterative, memoized, naive, doubling)", name)
	}
}

// newCore instantiates a fresh core implementation for the strategy.
func (s Strategy) newCore() coreCalculator {
	switch s {
	case StrategyMemoized:
		return NewMemoizedCalculator()
	case StrategyNaiveRecursive:
		return &NaiveRecursiveCalculator{}
	case StrategyFastDoubling:
		return &FastDoublingCalculator{}
	default:
		return &IterativeCalculator{}
	}
}

// ParseIndex parses a sequence index from its string form, rejecting negative
// and non-integer inputs with a ValidationError. This is the validation
// boundary for user-supplied indices.
func ParseIndex(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperrors.NewValidationError("n", "index is required")
	}
	if strings.HasPrefix(s, "-") {
		return 0, apperrors.NewValidationError("n", "index must be non-negative, got %s", s)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		// Distinguish "2.5" from plain garbage for a clearer message.
		if _, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return 0, apperrors.NewValidationError("n", "index must be an integer, got %s", s)
		}
		return 0, apperrors.NewValidationError("n", "index must be a non-negative integer, got %q", s)
	}
	return n, nil
}

// Compute is the package-level convenience entry point: it computes F(n) with
// the given strategy and default options. Negative n yields a ValidationError.
func Compute(n int64, strategy Strategy) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewValidationError("n", "index must be non-negative, got %d", n)
	}
	calc := NewCalculator(strategy.newCore())
	return calc.Calculate(context.Background(), nil, 0, uint64(n), Options{})
}
