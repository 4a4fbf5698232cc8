package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemorySnapshot_Delta(t *testing.T) {
	t.Parallel()

	before := MemorySnapshot{HeapAlloc: 100, Sys: 1000, NumGC: 2, PauseTotalNs: 50}
	after := MemorySnapshot{HeapAlloc: 300, Sys: 1000, NumGC: 5, PauseTotalNs: 120}

	d := after.Delta(before)
	if d.HeapAlloc != 200 {
		t.Errorf("HeapAlloc delta = %d, want 200", d.HeapAlloc)
	}
	if d.NumGC != 3 {
		t.Errorf("NumGC delta = %d, want 3", d.NumGC)
	}
	if d.PauseTotalNs != 70 {
		t.Errorf("PauseTotalNs delta = %d, want 70", d.PauseTotalNs)
	}
}

func TestMemorySnapshot_DeltaSaturates(t *testing.T) {
	t.Parallel()

	before := MemorySnapshot{HeapAlloc: 500}
	after := MemorySnapshot{HeapAlloc: 100} // heap shrank after a GC

	if d := after.Delta(before); d.HeapAlloc != 0 {
		t.Errorf("HeapAlloc delta = %d, want saturation to 0", d.HeapAlloc)
	}
}
