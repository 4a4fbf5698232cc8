package orchestration

import (
	"github.com/fibseq/fibseq/internal/fibonacci"
)

// GetCalculatorsToRun determines which calculators should be executed based
// on the requested strategy name. Returns calculators in alphabetically
// sorted key order for consistent, reproducible behavior.
//
// In "all" (comparison) mode the naive recursive strategy is included only
// when n is within its input cap; beyond the cap it would fail by contract
// and add noise to the comparison report.
func GetCalculatorsToRun(algo string, n uint64, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	if algo == "all" {
		keys := factory.List() // List() returns sorted keys
		calculators := make([]fibonacci.Calculator, 0, len(keys))
		for _, k := range keys {
			if k == fibonacci.StrategyNaiveRecursive.String() && n > fibonacci.MaxNaiveRecursionIndex {
				continue
			}
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(algo); err == nil {
		return []fibonacci.Calculator{calc}
	}
	return nil
}
