// Package progress implements observer-based progress reporting for
// long-running sequence calculations. Calculators report a completion fraction
// through a ProgressCallback; observers fan the updates out to channels, logs,
// or nothing at all.
package progress

import (
	"math/bits"
	"sync"

	"github.com/fibseq/fibseq/internal/logging"
)

// ProgressUpdate carries a single progress report from one calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies which concurrently running calculator
	// produced the update.
	CalculatorIndex int
	// Value is the completion fraction, 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives a completion fraction between 0.0 and 1.0.
type ProgressCallback func(progress float64)

// ProgressObserver receives progress updates from a ProgressSubject.
type ProgressObserver interface {
	// Update is called with the calculator index and its completion fraction.
	Update(calcIndex int, progress float64)
}

// ProgressSubject maintains a set of observers and notifies them of progress
// updates. Register and Freeze may be called concurrently.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates an empty progress subject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer to the notification set.
func (s *ProgressSubject) Register(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Unregister removes a previously registered observer.
func (s *ProgressSubject) Unregister(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, obs := range s.observers {
		if obs == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify sends a progress update to all currently registered observers.
func (s *ProgressSubject) Notify(calcIndex int, progress float64) {
	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()
	for _, o := range observers {
		o.Update(calcIndex, progress)
	}
}

// Freeze returns a ProgressCallback bound to the observers registered at the
// time of the call. Observers added later are not notified by the returned
// callback. The snapshot makes the callback safe to invoke from a calculation
// goroutine without further locking.
func (s *ProgressSubject) Freeze(calcIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(progress float64) {
		for _, o := range snapshot {
			o.Update(calcIndex, progress)
		}
	}
}

// ChannelObserver forwards updates to a channel. Sends are non-blocking: when
// the channel buffer is full the update is dropped rather than stalling the
// calculation goroutine.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates an observer forwarding to ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update forwards the progress value to the channel, dropping it if full.
func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	select {
	case o.ch <- ProgressUpdate{CalculatorIndex: calcIndex, Value: progress}:
	default:
	}
}

// LoggingObserver logs progress updates at debug level.
type LoggingObserver struct {
	logger logging.Logger
}

// NewLoggingObserver creates an observer that logs through the given logger.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// Update logs the progress value.
func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	o.logger.Debug("calculation progress",
		logging.Int("calculator", calcIndex),
		logging.Float64("progress", progress))
}

// NoOpObserver discards all updates. Useful as a default when progress
// reporting is disabled.
type NoOpObserver struct{}

// NewNoOpObserver creates a discarding observer.
func NewNoOpObserver() *NoOpObserver { return &NoOpObserver{} }

// Update discards the progress value.
func (*NoOpObserver) Update(int, float64) {}

// CalcTotalWork returns the number of progress steps a calculation of F(n)
// performs. Logarithmic algorithms report one step per bit of n; linear
// algorithms scale their own step counter against n directly.
func CalcTotalWork(n uint64) int {
	if n == 0 {
		return 1
	}
	return bits.Len64(n)
}

// ReportStepProgress invokes cb with the completion fraction for step out of
// totalSteps. It harmonizes reporting across algorithms: step counting starts
// at 1 and the final step always reports exactly 1.0.
func ReportStepProgress(cb ProgressCallback, step, totalSteps int) {
	if cb == nil || totalSteps <= 0 {
		return
	}
	if step >= totalSteps {
		cb(1.0)
		return
	}
	cb(float64(step) / float64(totalSteps))
}
