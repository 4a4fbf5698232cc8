package app

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os/signal"
	"syscall"
	"time"

	"github.com/fibseq/fibseq/internal/cli"
	apperrors "github.com/fibseq/fibseq/internal/errors"
	"github.com/fibseq/fibseq/internal/fibonacci"
	"github.com/fibseq/fibseq/internal/logging"
	"github.com/fibseq/fibseq/internal/metrics"
	"github.com/fibseq/fibseq/internal/orchestration"
	"github.com/fibseq/fibseq/internal/server"
	"github.com/fibseq/fibseq/internal/ui"
)

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// Partial computation mode: last K digits only
	if a.Config.LastDigits > 0 {
		return a.runLastDigits(ctx, out)
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Config.N, a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	opts := fibonacci.Options{ParallelThreshold: a.Config.ParallelThreshold}
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.N, opts, progressReporter, progressOut)

	if a.Config.Verbose {
		a.logMemoryUsage(collector.Snapshot().Delta(before))
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
	}

	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

// logMemoryUsage emits the memory delta of the calculation run as a
// structured log record.
func (a *Application) logMemoryUsage(delta metrics.MemorySnapshot) {
	logger := logging.NewLogger(a.ErrWriter, "app")
	logger.Debug("memory usage",
		logging.Uint64("heap_alloc_bytes", delta.HeapAlloc),
		logging.Uint64("sys_bytes", delta.Sys),
		logging.Uint64("heap_objects", delta.HeapObjects),
		logging.Uint64("gc_runs", uint64(delta.NumGC)),
		logging.Uint64("gc_pause_ns", delta.PauseTotalNs))
}

// runLastDigits computes only the last K decimal digits of F(N) using modular
// arithmetic, requiring O(K) memory regardless of N.
func (a *Application) runLastDigits(_ context.Context, out io.Writer) int {
	k := a.Config.LastDigits
	n := a.Config.N

	// modulus = 10^k
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Computing last %d digits of F(%d)...\n", k, n)
	}

	start := time.Now()
	result, err := fibonacci.FastDoublingMod(n, mod)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	cli.PrintLastDigitsResult(result, n, k, a.Config.Quiet, out)
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Computed in %s\n", elapsed.Round(time.Millisecond))
	}

	return apperrors.ExitSuccess
}

// runServer starts the HTTP API and metrics server and blocks until the
// context is cancelled.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewLogger(a.ErrWriter, "server")
	srv := server.NewServer(a.Config.MetricsAddr, a.Factory, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Quiet mode bypasses the comparison table entirely.
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Result, a.Config.N, bestResult.Duration)
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		N:         a.Config.N,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Verbose,
		ShowValue: a.Config.ShowValue,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, a.Config.N, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
