// Package config handles command-line flag parsing, environment variable
// overrides and validation of the application configuration.
//
// Priority order: CLI flags > environment variables > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	apperrors "github.com/fibseq/fibseq/internal/errors"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "FIBSEQ_"

// Defaults for the main configuration knobs.
const (
	DefaultN       = 100000
	DefaultAlgo    = "all"
	DefaultTimeout = 5 * time.Minute
)

// AppConfig holds the complete runtime configuration of the application.
type AppConfig struct {
	// N is the Fibonacci index to compute.
	N uint64

	// Algo selects the calculation strategy ("iterative", "memoized",
	// "naive", "doubling" or "all" for a cross-strategy comparison run).
	Algo string

	// Timeout bounds the total calculation time.
	Timeout time.Duration

	// ParallelThreshold is the bit length above which the fast doubling
	// strategy parallelizes its big.Int multiplications. 0 selects the
	// built-in default; negative disables parallelism.
	ParallelThreshold int

	// LastDigits, when positive, switches to modular mode: only the last
	// K decimal digits of F(n) are computed.
	LastDigits int

	Verbose   bool
	Quiet     bool
	ShowValue bool

	// OutputFile, when non-empty, receives the full result.
	OutputFile string

	// TUI enables the interactive terminal dashboard.
	TUI bool

	// REPL enables the interactive calculator session.
	REPL bool

	// Completion, when non-empty, generates a completion script for the
	// named shell and exits.
	Completion string

	// MetricsAddr, when non-empty, serves Prometheus metrics on that
	// address for the duration of the run (e.g. ":9090").
	MetricsAddr string
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment variable overrides for flags not set on the command line,
// and validates the result.
//
// availableAlgos lists the strategy names accepted by --algo (in addition
// to "all").
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	cfg := AppConfig{}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Uint64Var(&cfg.N, "n", DefaultN, "Fibonacci index to compute")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo,
		fmt.Sprintf("algorithm to use (%s, or 'all' to compare)", strings.Join(availableAlgos, ", ")))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "global calculation timeout")
	fs.IntVar(&cfg.ParallelThreshold, "parallel-threshold", 0,
		"bit length above which multiplications run in parallel (0 = default, negative = disabled)")
	fs.IntVar(&cfg.LastDigits, "last-digits", 0,
		"compute only the last K decimal digits of F(n)")

	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "verbose output (alias of -v)")
	fs.BoolVar(&cfg.Quiet, "q", false, "quiet mode: print only the result")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "quiet mode (alias of -q)")
	fs.BoolVar(&cfg.ShowValue, "c", false, "display the full calculated value")
	fs.BoolVar(&cfg.ShowValue, "calculate", false, "display the full calculated value (alias of -c)")

	fs.StringVar(&cfg.OutputFile, "o", "", "write the full result to a file")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the full result to a file (alias of -o)")

	fs.BoolVar(&cfg.TUI, "tui", false, "interactive terminal dashboard")
	fs.BoolVar(&cfg.REPL, "repl", false, "interactive calculator session")
	fs.StringVar(&cfg.Completion, "completion", "", "generate a completion script (bash, zsh, fish)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address during the run (e.g. :9090)")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg, availableAlgos); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate checks semantic constraints that flag parsing cannot express.
func validate(cfg AppConfig, availableAlgos []string) error {
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.LastDigits < 0 {
		return apperrors.NewConfigError("last-digits must be non-negative, got %d", cfg.LastDigits)
	}
	if cfg.Quiet && cfg.Verbose {
		return apperrors.NewConfigError("quiet and verbose are mutually exclusive")
	}
	if !isValidAlgo(cfg.Algo, availableAlgos) {
		sorted := append([]string(nil), availableAlgos...)
		sort.Strings(sorted)
		return apperrors.NewConfigError("unknown algorithm %q (valid: %s, all)",
			cfg.Algo, strings.Join(sorted, ", "))
	}
	return nil
}

func isValidAlgo(algo string, availableAlgos []string) bool {
	if strings.EqualFold(algo, "all") {
		return true
	}
	for _, a := range availableAlgos {
		if strings.EqualFold(algo, a) {
			return true
		}
	}
	return false
}
