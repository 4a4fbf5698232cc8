package progress

import (
	"sync"
	"sync/atomic"
	"testing"
)

// countingObserver tracks the number of Update calls using an atomic counter,
// making it safe for concurrent use.
type countingObserver struct {
	count atomic.Int64
}

func (o *countingObserver) Update(calcIndex int, progress float64) {
	o.count.Add(1)
}

func TestRegisterAndNotify(t *testing.T) {
	subject := NewProgressSubject()
	obs := &countingObserver{}
	subject.Register(obs)

	subject.Notify(0, 0.5)
	subject.Notify(0, 1.0)

	if obs.count.Load() != 2 {
		t.Errorf("observer should have received 2 updates, got %d", obs.count.Load())
	}
}

func TestUnregister(t *testing.T) {
	subject := NewProgressSubject()
	obs := &countingObserver{}
	subject.Register(obs)
	subject.Unregister(obs)

	subject.Notify(0, 0.5)

	if obs.count.Load() != 0 {
		t.Errorf("unregistered observer should receive no updates, got %d", obs.count.Load())
	}
}

// TestFreezeSnapshotImmutability verifies that after Freeze(), adding new
// observers does NOT affect the frozen callback. The frozen callback should
// only notify observers that were registered at the time of the freeze.
func TestFreezeSnapshotImmutability(t *testing.T) {
	subject := NewProgressSubject()
	obs1 := &countingObserver{}
	subject.Register(obs1)

	callback := subject.Freeze(0)

	obs2 := &countingObserver{}
	subject.Register(obs2)

	callback(0.5)

	if obs1.count.Load() != 1 {
		t.Errorf("obs1 should have count 1, got %d", obs1.count.Load())
	}
	if obs2.count.Load() != 0 {
		t.Errorf("obs2 should have count 0, got %d", obs2.count.Load())
	}
}

// TestFreezeConcurrentRegister verifies that concurrent Freeze() and Register()
// calls do not cause data races. This test should be run with -race.
func TestFreezeConcurrentRegister(t *testing.T) {
	subject := NewProgressSubject()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subject.Register(&countingObserver{})
		}()
	}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			cb := subject.Freeze(idx)
			cb(0.5)
		}(i)
	}
	wg.Wait()
}

// TestMultipleFrozenCallbacksConcurrent verifies that multiple frozen callbacks
// can be invoked concurrently without data races or lost updates.
func TestMultipleFrozenCallbacksConcurrent(t *testing.T) {
	subject := NewProgressSubject()
	obs := &countingObserver{}
	subject.Register(obs)

	callbacks := make([]ProgressCallback, 10)
	for i := range callbacks {
		callbacks[i] = subject.Freeze(i)
	}

	var wg sync.WaitGroup
	for _, cb := range callbacks {
		wg.Add(1)
		go func(fn ProgressCallback) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				fn(float64(j) / 1000.0)
			}
		}(cb)
	}
	wg.Wait()

	expected := int64(10 * 1000)
	if obs.count.Load() != expected {
		t.Errorf("expected %d updates, got %d", expected, obs.count.Load())
	}
}

func TestChannelObserver(t *testing.T) {
	t.Run("forwards updates", func(t *testing.T) {
		ch := make(chan ProgressUpdate, 4)
		obs := NewChannelObserver(ch)

		obs.Update(2, 0.25)

		update := <-ch
		if update.CalculatorIndex != 2 || update.Value != 0.25 {
			t.Errorf("update = %+v, want {2 0.25}", update)
		}
	})

	t.Run("drops updates when full", func(t *testing.T) {
		ch := make(chan ProgressUpdate, 1)
		obs := NewChannelObserver(ch)

		obs.Update(0, 0.1)
		obs.Update(0, 0.2) // buffer full, must not block

		if len(ch) != 1 {
			t.Errorf("channel should hold exactly 1 update, got %d", len(ch))
		}
	})
}

func TestNoOpObserver(t *testing.T) {
	obs := NewNoOpObserver()
	obs.Update(0, 0.5) // must not panic
}

func TestCalcTotalWork(t *testing.T) {
	tests := []struct {
		n    uint64
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{100, 7},
		{1 << 20, 21},
	}
	for _, tt := range tests {
		if got := CalcTotalWork(tt.n); got != tt.want {
			t.Errorf("CalcTotalWork(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestReportStepProgress(t *testing.T) {
	var last float64
	cb := func(p float64) { last = p }

	ReportStepProgress(cb, 5, 10)
	if last != 0.5 {
		t.Errorf("mid-step progress = %f, want 0.5", last)
	}

	ReportStepProgress(cb, 10, 10)
	if last != 1.0 {
		t.Errorf("final step progress = %f, want 1.0", last)
	}

	ReportStepProgress(cb, 99, 10)
	if last != 1.0 {
		t.Errorf("overshoot progress = %f, want 1.0", last)
	}

	ReportStepProgress(nil, 1, 10) // nil callback must not panic
}
