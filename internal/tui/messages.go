package tui

import (
	"time"

	"github.com/fibseq/fibseq/internal/orchestration"
)

// Messages exchanged between the bridge goroutines, the tick commands and
// the bubbletea update loop.

// ProgressMsg carries a single aggregated progress update.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel has been closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the sorted comparison results.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the winning calculation result.
type FinalResultMsg struct {
	Result    orchestration.CalculationResult
	N         uint64
	Verbose   bool
	Details   bool
	ShowValue bool
}

// ErrorMsg carries a calculation error.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// CalculationCompleteMsg signals the end of a calculation run. Generation
// guards against messages from a superseded run arriving after a reset.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation int
}

// TickMsg drives the periodic UI refresh.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-level CPU/memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg signals that the parent context was cancelled.
type ContextCancelledMsg struct{}
