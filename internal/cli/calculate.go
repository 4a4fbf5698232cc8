package cli

import (
	"fmt"
	"io"
	"math/big"
	"runtime"
	"strings"

	"github.com/fibseq/fibseq/internal/config"
	"github.com/fibseq/fibseq/internal/fibonacci"
	"github.com/fibseq/fibseq/internal/ui"
)

// PrintExecutionConfig displays the effective execution configuration: the
// target index, timeout, environment and parallelism threshold.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %sF(%d)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())

	threshold := cfg.ParallelThreshold
	if threshold == 0 {
		threshold = fibonacci.DefaultParallelThreshold
	}
	if threshold < 0 {
		fmt.Fprintf(out, "Parallelism: %sdisabled%s.\n", ui.ColorYellow(), ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Parallelism threshold: %s%d%s bits.\n",
			ui.ColorCyan(), threshold, ui.ColorReset())
	}
}

// PrintExecutionMode displays whether a single algorithm runs or all of them
// are compared.
func PrintExecutionMode(calculators []fibonacci.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = "Parallel comparison of all algorithms"
	} else {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// PrintLastDigitsResult displays a modular-mode result: the last k decimal
// digits of F(n), zero-padded to width k.
func PrintLastDigitsResult(digits *big.Int, n uint64, k int, quiet bool, out io.Writer) {
	padded := digits.String()
	if pad := k - len(padded); pad > 0 {
		padded = strings.Repeat("0", pad) + padded
	}
	if quiet {
		fmt.Fprintln(out, padded)
		return
	}
	fmt.Fprintf(out, "Last %s%d%s digits of F(%s%d%s): %s%s%s\n",
		ui.ColorCyan(), k, ui.ColorReset(),
		ui.ColorMagenta(), n, ui.ColorReset(),
		ui.ColorGreen(), padded, ui.ColorReset())
}
