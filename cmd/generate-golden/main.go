// Command generate-golden emits reference Fibonacci values as a tab-separated
// table. The values come from a simple iterative big.Int oracle, independent
// of the optimized strategies, so they can seed test vectors.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/big"
	"os"
)

// fibBig is the oracle: a plain iterative computation over big.Int.
func fibBig(n uint64) *big.Int {
	a := big.NewInt(0)
	b := big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func main() {
	var (
		maxN = flag.Uint64("max", 100, "largest index to emit")
		step = flag.Uint64("step", 1, "index stride")
		out  = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating %s: %v\n", *out, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if *step == 0 {
		*step = 1
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()
	for n := uint64(0); n <= *maxN; n += *step {
		fmt.Fprintf(bw, "%d\t%s\n", n, fibBig(n).String())
	}
}
