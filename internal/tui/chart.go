package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fibseq/fibseq/internal/format"
)

// sparklineMargin is the horizontal space reserved for the sparkline label
// and current value around the sample characters.
const sparklineMargin = 17

// ChartModel renders the aggregated progress bar and the CPU/memory
// sparklines.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	progressHistory *RingBuffer
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer
	width           int
	height          int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		progressHistory: NewRingBuffer(1),
		cpuHistory:      NewRingBuffer(1),
		memHistory:      NewRingBuffer(1),
	}
}

// SetSize updates dimensions and resizes the sample buffers so the
// sparklines fill the available width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.progressHistory.Resize(w - sparklineMargin)
	c.cpuHistory.Resize(w - sparklineMargin)
	c.memHistory.Resize(w - sparklineMargin)
}

// AddDataPoint records the latest aggregated progress and ETA.
func (c *ChartModel) AddDataPoint(value, averageProgress float64, eta time.Duration) {
	c.progressHistory.Push(value * 100)
	c.averageProgress = averageProgress
	c.eta = eta
}

// UpdateSysStats records a CPU/memory sample pair (percentages).
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// Reset clears progress and sample history.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.progressHistory.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// renderProgressBar renders the aggregated progress bar with percentage.
// Returns "" when the panel is too narrow for a meaningful bar.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 14
	if barWidth <= 0 {
		return ""
	}
	bar := chartBarStyle.Render(format.ProgressBar(c.averageProgress, barWidth))
	return fmt.Sprintf(" %s %.1f%%", bar, c.averageProgress*100)
}

// renderSparklineRow renders one labelled sparkline row.
func renderSparklineRow(label string, history *RingBuffer, style lipgloss.Style) string {
	spark := style.Render(RenderSparkline(history.Slice()))
	return fmt.Sprintf(" %s %s %5.1f%%", metricLabelStyle.Render(label), spark, history.Last())
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render("Progress Chart"))
	b.WriteString("\n")
	b.WriteString(c.renderProgressBar())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf(" %s %s",
		metricLabelStyle.Render("ETA:"),
		metricValueStyle.Render(format.FormatETA(c.eta))))

	if c.height >= 10 {
		b.WriteString("\n")
		b.WriteString(renderSparklineRow("CPU", c.cpuHistory, cpuSparklineStyle))
		b.WriteString("\n")
		b.WriteString(renderSparklineRow("MEM", c.memHistory, memSparklineStyle))
	}

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(b.String())
}
