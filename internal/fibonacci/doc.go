// Package fibonacci computes terms of the Fibonacci sequence under the
// recurrence F(0)=0, F(1)=1, F(n)=F(n-1)+F(n-2).
//
// Results are arbitrary-precision (*big.Int): terms grow geometrically with
// the golden ratio, so F(94) already exceeds the uint64 range. A uint64 fast
// path serves indices up to MaxFibUint64.
//
// Four strategies are provided, all returning identical values:
//
//   - IterativeCalculator: the canonical O(n) time, O(1) space forward pass.
//   - MemoizedCalculator: O(n) with an index-keyed cache that persists across
//     calls for the lifetime of the calculator instance.
//   - NaiveRecursiveCalculator: the textbook O(2^n) recursion, retained as a
//     documented educational reference with a hard input cap.
//   - FastDoublingCalculator: O(log n) doubling with optional parallel
//     multiplication for very large operands.
//
// Invalid indices (negative or non-integer) are rejected synchronously with a
// ValidationError at the API boundary (ParseIndex, Compute); they are
// programmer errors, never retried.
package fibonacci
