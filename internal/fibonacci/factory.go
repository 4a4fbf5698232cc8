package fibonacci

import (
	"sort"

	apperrors "github.com/fibseq/fibseq/internal/errors"
)

// CalculatorFactory provides named access to the registered strategies.
type CalculatorFactory interface {
	// Get returns the calculator registered under the given key.
	Get(name string) (Calculator, error)
	// List returns the registered keys in sorted order.
	List() []string
	// GetAll returns all registered calculators keyed by name.
	GetAll() map[string]Calculator
}

// DefaultFactory is the standard registry of strategies. Calculators are
// shared across Get calls; the memoized strategy therefore accumulates its
// cache across every use of the same factory instance.
type DefaultFactory struct {
	calculators map[string]Calculator
}

// Verify interface compliance.
var _ CalculatorFactory = (*DefaultFactory)(nil)

// NewDefaultFactory creates a factory with all four strategies registered.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{
		calculators: map[string]Calculator{
			StrategyIterative.String():      NewCalculator(&IterativeCalculator{}),
			StrategyMemoized.String():       NewCalculator(NewMemoizedCalculator()),
			StrategyNaiveRecursive.String(): NewCalculator(&NaiveRecursiveCalculator{}),
			StrategyFastDoubling.String():   NewCalculator(&FastDoublingCalculator{}),
		},
	}
}

// Get returns the calculator registered under name.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	calc, ok := f.calculators[name]
	if !ok {
		return nil, apperrors.NewConfigError("unknown strategy %q (available: %v)", name, f.List())
	}
	return calc, nil
}

// List returns the registered strategy keys in sorted order.
func (f *DefaultFactory) List() []string {
	keys := make([]string, 0, len(f.calculators))
	for k := range f.calculators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAll returns all registered calculators keyed by name.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	out := make(map[string]Calculator, len(f.calculators))
	for k, v := range f.calculators {
		out[k] = v
	}
	return out
}
