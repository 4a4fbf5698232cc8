package fibonacci

import (
	"context"
	"math/big"
	"testing"

	apperrors "github.com/fibseq/fibseq/internal/errors"
)

func TestFastDoublingMod_MatchesFullComputation(t *testing.T) {
	doubling := &FastDoublingCalculator{}
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(9), nil) // last 9 digits

	for _, n := range []uint64{0, 1, 2, 10, 93, 94, 500, 4096} {
		full, err := doubling.CalculateCore(context.Background(), func(float64) {}, n, Options{})
		if err != nil {
			t.Fatalf("full computation of F(%d) failed: %v", n, err)
		}
		want := new(big.Int).Mod(full, mod)

		got, err := FastDoublingMod(n, mod)
		if err != nil {
			t.Fatalf("FastDoublingMod(%d) failed: %v", n, err)
		}
		if got.Cmp(want) != 0 {
			t.Errorf("FastDoublingMod(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestFastDoublingMod_SmallModulus(t *testing.T) {
	// The Pisano period for m=10 is 60; spot-check one full period.
	mod := big.NewInt(10)
	want := []int64{0, 1, 1, 2, 3, 5, 8, 3, 1, 4, 5, 9, 4, 3, 7, 0, 7, 7, 4, 1}
	for n, w := range want {
		got, err := FastDoublingMod(uint64(n), mod)
		if err != nil {
			t.Fatalf("FastDoublingMod(%d) failed: %v", n, err)
		}
		if got.Int64() != w {
			t.Errorf("F(%d) mod 10 = %s, want %d", n, got, w)
		}
	}
}

func TestFastDoublingMod_LargeIndex(t *testing.T) {
	// The whole point of the modular path: indices whose full value would
	// occupy gigabytes. Just verify it terminates and stays within range.
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil)
	got, err := FastDoublingMod(1<<40, mod)
	if err != nil {
		t.Fatalf("FastDoublingMod(2^40) failed: %v", err)
	}
	if got.Sign() < 0 || got.Cmp(mod) >= 0 {
		t.Errorf("result %s out of range [0, %s)", got, mod)
	}
}

func TestFastDoublingMod_InvalidModulus(t *testing.T) {
	for _, m := range []*big.Int{nil, big.NewInt(0), big.NewInt(-7)} {
		_, err := FastDoublingMod(10, m)
		if err == nil {
			t.Errorf("FastDoublingMod with modulus %v should fail", m)
		} else if !apperrors.IsValidationError(err) {
			t.Errorf("error should be a ValidationError, got %T: %v", err, err)
		}
	}
}
