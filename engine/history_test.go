package engine

import (
	"testing"

	"github.com/glasswing-io/sysdash/model"
)

func push(h *History, values ...float64) {
	for _, v := range values {
		h.Push(model.NewReading(model.QuantityCPUTemp, v, "°C"))
	}
}

func values(rs []model.Reading) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Value
	}
	return out
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory(3)
	push(h, 60, 65, 70, 75, 80)

	got := values(h.Snapshot())
	want := []float64{70, 75, 80}
	if len(got) != len(want) {
		t.Fatalf("Snapshot() returned %d readings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Snapshot()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	min, max, ok := h.Stats()
	if !ok {
		t.Fatal("Stats() ok = false with data present")
	}
	if min != 70 || max != 80 {
		t.Errorf("Stats() = (%v, %v), want (70, 80)", min, max)
	}
}

func TestHistoryPartialFill(t *testing.T) {
	h := NewHistory(10)
	push(h, 50, 55)

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	latest, ok := h.Latest()
	if !ok || latest.Value != 55 {
		t.Errorf("Latest() = (%v, %v), want (55, true)", latest.Value, ok)
	}
}

func TestHistoryStatsSkipsAbsent(t *testing.T) {
	h := NewHistory(5)
	h.Push(model.NewReading(model.QuantityCPUTemp, 72, "°C"))
	h.Push(model.Absent(model.QuantityCPUTemp, "°C"))
	h.Push(model.NewReading(model.QuantityCPUTemp, 68, "°C"))

	min, max, ok := h.Stats()
	if !ok {
		t.Fatal("Stats() ok = false with valid readings present")
	}
	if min != 68 || max != 72 {
		t.Errorf("Stats() = (%v, %v), want (68, 72)", min, max)
	}
	// The gap stays in the ring for the time axis.
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
}

func TestHistoryStatsAllAbsent(t *testing.T) {
	h := NewHistory(4)
	h.Push(model.Absent(model.QuantityGPUTemp, "°C"))
	h.Push(model.Absent(model.QuantityGPUTemp, "°C"))

	if _, _, ok := h.Stats(); ok {
		t.Error("Stats() ok = true with no valid readings")
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(3)
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
	if _, ok := h.Latest(); ok {
		t.Error("Latest() ok = true on empty ring")
	}
	if got := h.Snapshot(); len(got) != 0 {
		t.Errorf("Snapshot() returned %d readings, want 0", len(got))
	}
}

func TestHistoryCoercesCapacity(t *testing.T) {
	h := NewHistory(0)
	push(h, 1, 2)
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
	latest, _ := h.Latest()
	if latest.Value != 2 {
		t.Errorf("Latest().Value = %v, want 2", latest.Value)
	}
}
