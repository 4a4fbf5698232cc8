package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// maxLogEntries caps the activity log so long runs do not grow unbounded.
const maxLogEntries = 500

type logLevel int

const (
	logProgress logLevel = iota
	logSuccess
	logError
	logInfo
)

type logEntry struct {
	ts    time.Time
	algo  string
	text  string
	level logLevel
}

// LogsModel renders the scrollable activity log panel.
type LogsModel struct {
	entries []logEntry
	// offset is the number of lines scrolled up from the tail.
	offset int
	width  int
	height int
}

// NewLogsModel creates a new log panel.
func NewLogsModel() LogsModel {
	return LogsModel{}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Add appends a log entry. Adding snaps the view back to the tail.
func (l *LogsModel) Add(level logLevel, algo, text string) {
	l.entries = append(l.entries, logEntry{
		ts:    time.Now(),
		algo:  algo,
		text:  text,
		level: level,
	})
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
	l.offset = 0
}

// Reset clears all entries.
func (l *LogsModel) Reset() {
	l.entries = nil
	l.offset = 0
}

// visibleLines returns how many entries fit in the panel.
func (l LogsModel) visibleLines() int {
	lines := l.height - 3
	if lines < 1 {
		lines = 1
	}
	return lines
}

// ScrollUp moves the view one line toward older entries.
func (l *LogsModel) ScrollUp() {
	maxOffset := len(l.entries) - l.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.offset < maxOffset {
		l.offset++
	}
}

// ScrollDown moves the view one line toward the tail.
func (l *LogsModel) ScrollDown() {
	if l.offset > 0 {
		l.offset--
	}
}

// PageUp scrolls one page toward older entries.
func (l *LogsModel) PageUp() {
	for i := 0; i < l.visibleLines(); i++ {
		l.ScrollUp()
	}
}

// PageDown scrolls one page toward the tail.
func (l *LogsModel) PageDown() {
	for i := 0; i < l.visibleLines(); i++ {
		l.ScrollDown()
	}
}

func (e logEntry) render(width int) string {
	ts := logTimeStyle.Render(e.ts.Format("15:04:05"))
	algo := logAlgoStyle.Render(fmt.Sprintf("%-10s", e.algo))

	var text string
	switch e.level {
	case logSuccess:
		text = logSuccessStyle.Render(e.text)
	case logError:
		text = logErrorStyle.Render(e.text)
	case logProgress:
		text = logProgressStyle.Render(e.text)
	default:
		text = e.text
	}

	line := fmt.Sprintf(" %s %s %s", ts, algo, text)
	if lipgloss.Width(line) > width && width > 3 {
		runes := []rune(line)
		if len(runes) > width-3 {
			line = string(runes[:width-3]) + "..."
		}
	}
	return line
}

// View renders the log panel.
func (l LogsModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Activity Log"))

	lines := l.visibleLines()
	end := len(l.entries) - l.offset
	start := end - lines
	if start < 0 {
		start = 0
	}
	for _, e := range l.entries[start:end] {
		b.WriteString("\n")
		b.WriteString(e.render(l.width - 4))
	}

	return panelStyle.
		Width(l.width - 2).
		Height(l.height - 2).
		Render(b.String())
}
