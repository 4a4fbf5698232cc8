// Package tui implements the live monitor dashboard. It wraps a comparison
// run in a bubbletea program: the orchestration layer runs unchanged in the
// background while bridge adapters forward progress and results as messages.
package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fibseq/fibseq/internal/config"
	apperrors "github.com/fibseq/fibseq/internal/errors"
	"github.com/fibseq/fibseq/internal/fibonacci"
	"github.com/fibseq/fibseq/internal/format"
	"github.com/fibseq/fibseq/internal/orchestration"
	"github.com/fibseq/fibseq/internal/sysmon"
)

const tickInterval = 500 * time.Millisecond

type runStatus int

const (
	statusRunning runStatus = iota
	statusDone
	statusError
)

// ExecutionState tracks the outcome of the current calculation run.
type ExecutionState struct {
	Status   runStatus
	ExitCode int
}

// Model is the root bubbletea model for the monitor.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	keymap  KeyMap

	state      ExecutionState
	paused     bool
	generation int

	width  int
	height int

	cfg         config.AppConfig
	calculators []fibonacci.Calculator
	parentCtx   context.Context
	calcCtx     context.Context
	calcCancel  context.CancelFunc
	ref         *programRef
}

func newModel(ctx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, version string, ref *programRef) Model {
	calcCtx, calcCancel := context.WithCancel(ctx)
	return Model{
		header:      NewHeaderModel(version),
		logs:        NewLogsModel(),
		metrics:     NewMetricsModel(),
		chart:       NewChartModel(),
		keymap:      DefaultKeyMap(),
		cfg:         cfg,
		calculators: calculators,
		parentCtx:   ctx,
		calcCtx:     calcCtx,
		calcCancel:  calcCancel,
		ref:         ref,
	}
}

// Init starts the calculation and the periodic sampling commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.startCalculationCmd(),
		tickCmd(),
		sampleMemStatsCmd(),
		sampleSysStatsCmd(),
		watchContextCmd(m.parentCtx),
	)
}

// startCalculationCmd runs the comparison in a background goroutine and
// reports the exit code when done.
func (m Model) startCalculationCmd() tea.Cmd {
	ctx := m.calcCtx
	generation := m.generation
	calculators := m.calculators
	cfg := m.cfg
	ref := m.ref

	return func() tea.Msg {
		opts := fibonacci.Options{ParallelThreshold: cfg.ParallelThreshold}
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := orchestration.ExecuteCalculations(ctx, calculators, cfg.N, opts, reporter, io.Discard)
		exitCode := orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{
			N:         cfg.N,
			Verbose:   cfg.Verbose,
			ShowValue: cfg.ShowValue,
		}, presenter, presenter, io.Discard)

		return CalculationCompleteMsg{ExitCode: exitCode, Generation: generation}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapInuse:    ms.HeapInuse,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		stats := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: stats.CPUPercent,
			MemPercent: stats.MemPercent,
		}
	}
}

func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{}
	}
}

// Update is the bubbletea message dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case ProgressMsg:
		m.chart.AddDataPoint(msg.Value, msg.AverageProgress, msg.ETA)
		m.metrics.UpdateProgress(msg.AverageProgress)
		if msg.Value >= 1.0 && msg.CalculatorIndex < len(m.calculators) {
			m.logs.Add(logProgress, m.calculators[msg.CalculatorIndex].Name(), "reached 100%")
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		for _, r := range msg.Results {
			if r.Err != nil {
				m.logs.Add(logError, r.Name, fmt.Sprintf("failed: %v", r.Err))
			} else {
				m.logs.Add(logSuccess, r.Name, fmt.Sprintf("done in %s", format.FormatExecutionDuration(r.Duration)))
			}
		}
		return m, nil

	case FinalResultMsg:
		if msg.Result.Result != nil {
			m.logs.Add(logSuccess, msg.Result.Name,
				fmt.Sprintf("F(%d) has %d digits (%d bits)",
					msg.N, len(msg.Result.Result.Text(10)), msg.Result.Result.BitLen()))
		}
		return m, nil

	case ErrorMsg:
		m.state.Status = statusError
		m.logs.Add(logError, "run", fmt.Sprintf("%v (after %s)", msg.Err, format.FormatExecutionDuration(msg.Duration)))
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.state.ExitCode = msg.ExitCode
		if m.state.Status != statusError {
			if msg.ExitCode == apperrors.ExitSuccess {
				m.state.Status = statusDone
			} else {
				m.state.Status = statusError
			}
		}
		m.header.SetDone()
		return m, nil

	case TickMsg:
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(tickCmd(), sampleMemStatsCmd(), sampleSysStatsCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		m.state.ExitCode = apperrors.ExitErrorCanceled
		m.calcCancel()
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.calcCancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.state.Status == statusRunning {
			return m, nil
		}
		return m.reset()

	case key.Matches(msg, m.keymap.Up):
		m.logs.ScrollUp()
	case key.Matches(msg, m.keymap.Down):
		m.logs.ScrollDown()
	case key.Matches(msg, m.keymap.PageUp):
		m.logs.PageUp()
	case key.Matches(msg, m.keymap.PageDown):
		m.logs.PageDown()
	}
	return m, nil
}

// reset starts a fresh calculation run under a new generation. Messages from
// the previous run are ignored via the generation check.
func (m Model) reset() (tea.Model, tea.Cmd) {
	m.calcCancel()
	m.generation++
	m.calcCtx, m.calcCancel = context.WithCancel(m.parentCtx)
	m.state = ExecutionState{}
	m.paused = false
	m.header.Reset()
	m.logs.Reset()
	m.chart.Reset()
	m.metrics = NewMetricsModel()
	m.layout()
	return m, m.startCalculationCmd()
}

// layout distributes the available space among the panels.
func (m *Model) layout() {
	bodyHeight := m.height - 2 // header + footer
	if bodyHeight < 2 {
		bodyHeight = 2
	}
	logsWidth := m.width / 2
	rightWidth := m.width - logsWidth
	rightTop := bodyHeight / 2

	m.header.SetWidth(m.width)
	m.logs.SetSize(logsWidth, bodyHeight)
	m.metrics.SetSize(rightWidth, rightTop)
	m.chart.SetSize(rightWidth, bodyHeight-rightTop)
}

func (m Model) statusView() string {
	switch {
	case m.paused:
		return statusPausedStyle.Render("PAUSED")
	case m.state.Status == statusDone:
		return statusDoneStyle.Render("DONE")
	case m.state.Status == statusError:
		return statusErrorStyle.Render(fmt.Sprintf("ERROR (exit %d)", m.state.ExitCode))
	default:
		return statusRunningStyle.Render("RUNNING")
	}
}

func (m Model) footerView() string {
	help := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		footerKeyStyle.Render("q"), footerDescStyle.Render("quit"),
		footerKeyStyle.Render("p"), footerDescStyle.Render("pause"),
		footerKeyStyle.Render("r"), footerDescStyle.Render("restart"),
		footerKeyStyle.Render("↑/↓"), footerDescStyle.Render("scroll"))
	return " " + m.statusView() + "  " + help
}

// View renders the full dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.logs.View(), right)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.footerView(),
	)
}

// Run starts the monitor and blocks until it exits. It returns the process
// exit code for the underlying calculation run.
func Run(ctx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, version string) int {
	initTUIStyles()

	ref := &programRef{}
	m := newModel(ctx, calculators, cfg, version, ref)

	p := tea.NewProgram(m, tea.WithAltScreen())
	ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if fm, ok := final.(Model); ok {
		fm.calcCancel()
		return fm.state.ExitCode
	}
	return apperrors.ExitSuccess
}
