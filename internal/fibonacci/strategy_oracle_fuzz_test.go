package fibonacci

import (
	"context"
	"math/big"
	"testing"
)

// FuzzStrategyOracle compares the fast doubling strategy against the
// iterative forward pass for arbitrary indices. The two implementations share
// no code beyond math/big, so agreement is strong evidence of correctness.
func FuzzStrategyOracle(f *testing.F) {
	for _, seed := range []uint64{0, 1, 2, 93, 94, 1000, 4096, 65535} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, n uint64) {
		if n > 100_000 {
			n %= 100_000 // keep the linear oracle fast
		}

		iterative := &IterativeCalculator{}
		doubling := &FastDoublingCalculator{}
		noop := func(float64) {}

		want, err := iterative.CalculateCore(context.Background(), noop, n, Options{})
		if err != nil {
			t.Fatalf("iterative F(%d) failed: %v", n, err)
		}
		got, err := doubling.CalculateCore(context.Background(), noop, n, Options{})
		if err != nil {
			t.Fatalf("doubling F(%d) failed: %v", n, err)
		}

		if got.Cmp(want) != 0 {
			t.Errorf("strategies disagree at n=%d", n)
		}
	})
}

// FuzzModularOracle checks FastDoublingMod against a plain Mod of the full
// value for random indices and moduli.
func FuzzModularOracle(f *testing.F) {
	f.Add(uint64(10), uint64(10))
	f.Add(uint64(93), uint64(1000))
	f.Add(uint64(4096), uint64(1_000_000_007))
	f.Fuzz(func(t *testing.T, n, m uint64) {
		if m == 0 {
			return
		}
		if n > 50_000 {
			n %= 50_000
		}

		mod := new(big.Int).SetUint64(m)
		got, err := FastDoublingMod(n, mod)
		if err != nil {
			t.Fatalf("FastDoublingMod(%d, %d) failed: %v", n, m, err)
		}

		full, err := (&FastDoublingCalculator{}).CalculateCore(context.Background(), func(float64) {}, n, Options{})
		if err != nil {
			t.Fatalf("full F(%d) failed: %v", n, err)
		}
		want := new(big.Int).Mod(full, mod)

		if got.Cmp(want) != 0 {
			t.Errorf("FastDoublingMod(%d, %d) = %s, want %s", n, m, got, want)
		}
	})
}
