package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// MaxETA caps the reported estimated time remaining. Estimates beyond this
// bound are noise, not information.
const MaxETA = 24 * time.Hour

// etaSmoothingFactor is the weight given to the latest progress-rate sample in
// the exponential moving average. Lower values favor stability over reactivity.
const etaSmoothingFactor = 0.3

// ProgressState tracks the individual progress (0.0 to 1.0) of a set of
// concurrently running calculators. It is safe for concurrent use.
type ProgressState struct {
	mu             sync.Mutex
	progresses     []float64
	numCalculators int
}

// NewProgressState creates a ProgressState for numCalculators calculators.
func NewProgressState(numCalculators int) *ProgressState {
	if numCalculators < 0 {
		numCalculators = 0
	}
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records the progress value for the calculator at index. Values are
// clamped to [0, 1]; out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	ps.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress across all calculators.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.numCalculators == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numCalculators)
}

// ProgressWithETA extends ProgressState with a smoothed progress-rate estimate
// used to derive the remaining time of a run.
type ProgressWithETA struct {
	*ProgressState
	numCalculators int
	startTime      time.Time
	lastUpdateTime time.Time
	lastAverage    float64
	progressRate   float64 // smoothed progress fraction per second
}

// NewProgressWithETA creates an ETA-tracking progress aggregate for
// numCalculators calculators.
func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState:  NewProgressState(numCalculators),
		numCalculators: numCalculators,
		startTime:      now,
		lastUpdateTime: now,
	}
}

// UpdateWithETA records a progress value and returns the new average progress
// together with the current ETA estimate.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.lastUpdateTime).Seconds()
	if elapsed > 0 && avg > p.lastAverage {
		rate := (avg - p.lastAverage) / elapsed
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = etaSmoothingFactor*rate + (1-etaSmoothingFactor)*p.progressRate
		}
		p.lastUpdateTime = now
		p.lastAverage = avg
	}

	return avg, p.GetETA()
}

// GetETA returns the estimated remaining time based on the smoothed progress
// rate. It returns 0 when no rate information is available yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > MaxETA {
		return MaxETA
	}
	return eta
}

// FormatETA renders a duration as a compact human-readable ETA string.
// Zero and negative durations render as "calculating..." since they indicate
// that no rate estimate exists yet.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders a textual progress bar of the given length using block
// characters. Progress is clamped to [0, 1].
func ProgressBar(progress float64, length int) string {
	progress = clamp01(progress)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders a progress bar with percentage and ETA,
// e.g. "[█████░░░░░] 50.0% | ETA: 30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %.1f%% | ETA: %s",
		ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
