package tui

import (
	"fmt"
	"strings"
	"testing"
)

func TestLogsModel_AddAndView(t *testing.T) {
	l := NewLogsModel()
	l.SetSize(60, 10)

	l.Add(logSuccess, "doubling", "done in 12ms")
	l.Add(logError, "naive", "failed: context deadline exceeded")

	view := l.View()
	if !strings.Contains(view, "Activity Log") {
		t.Error("expected view to contain 'Activity Log'")
	}
	if !strings.Contains(view, "doubling") {
		t.Error("expected view to contain algorithm name")
	}
	if !strings.Contains(view, "failed") {
		t.Error("expected view to contain error text")
	}
}

func TestLogsModel_CapsEntries(t *testing.T) {
	l := NewLogsModel()
	for i := 0; i < maxLogEntries+50; i++ {
		l.Add(logProgress, "iterative", fmt.Sprintf("update %d", i))
	}
	if len(l.entries) != maxLogEntries {
		t.Errorf("expected %d entries, got %d", maxLogEntries, len(l.entries))
	}
	// Oldest entries are dropped first.
	if l.entries[0].text != "update 50" {
		t.Errorf("expected oldest entry 'update 50', got %q", l.entries[0].text)
	}
}

func TestLogsModel_Scroll(t *testing.T) {
	l := NewLogsModel()
	l.SetSize(60, 8) // 5 visible lines

	for i := 0; i < 20; i++ {
		l.Add(logProgress, "memoized", fmt.Sprintf("line %d", i))
	}

	// Tail is shown by default.
	if !strings.Contains(l.View(), "line 19") {
		t.Error("expected tail entry visible by default")
	}

	l.ScrollUp()
	l.ScrollUp()
	if l.offset != 2 {
		t.Errorf("expected offset 2, got %d", l.offset)
	}
	if strings.Contains(l.View(), "line 19") {
		t.Error("expected tail entry hidden after scrolling up")
	}

	l.ScrollDown()
	l.ScrollDown()
	if l.offset != 0 {
		t.Errorf("expected offset 0 after scrolling back, got %d", l.offset)
	}

	// Scrolling past the ends is clamped.
	l.ScrollDown()
	if l.offset != 0 {
		t.Error("expected offset clamped at tail")
	}
	for i := 0; i < 100; i++ {
		l.ScrollUp()
	}
	if l.offset != 20-l.visibleLines() {
		t.Errorf("expected offset clamped at %d, got %d", 20-l.visibleLines(), l.offset)
	}
}

func TestLogsModel_AddSnapsToTail(t *testing.T) {
	l := NewLogsModel()
	l.SetSize(60, 8)

	for i := 0; i < 20; i++ {
		l.Add(logProgress, "iterative", fmt.Sprintf("line %d", i))
	}
	l.ScrollUp()
	l.ScrollUp()

	l.Add(logSuccess, "iterative", "done")
	if l.offset != 0 {
		t.Errorf("expected offset reset to 0 on Add, got %d", l.offset)
	}
}

func TestLogsModel_Reset(t *testing.T) {
	l := NewLogsModel()
	l.Add(logInfo, "run", "started")
	l.Reset()
	if len(l.entries) != 0 {
		t.Errorf("expected no entries after reset, got %d", len(l.entries))
	}
}
