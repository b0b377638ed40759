package engine

import (
	"sync"

	"github.com/glasswing-io/sysdash/model"
)

// History is a fixed-capacity ring of readings for one quantity. When
// full, a push evicts the oldest entry. Safe for concurrent use: the
// collection tick pushes while the renderer reads.
type History struct {
	mu   sync.RWMutex
	buf  []model.Reading
	head int // index of the oldest entry
	size int
}

// NewHistory builds a ring holding at most capacity readings.
// Non-positive capacities are coerced to 1.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]model.Reading, capacity)}
}

// Push appends a reading, evicting the oldest if the ring is full.
// Absent readings are stored too: they keep the time axis honest and
// are skipped by Stats.
func (h *History) Push(r model.Reading) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.size < len(h.buf) {
		h.buf[(h.head+h.size)%len(h.buf)] = r
		h.size++
		return
	}
	h.buf[h.head] = r
	h.head = (h.head + 1) % len(h.buf)
}

// Snapshot returns the readings oldest-first as a fresh slice.
func (h *History) Snapshot() []model.Reading {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.Reading, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(h.head+i)%len(h.buf)]
	}
	return out
}

// Latest returns the newest reading, or false when the ring is empty.
func (h *History) Latest() (model.Reading, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.size == 0 {
		return model.Reading{}, false
	}
	return h.buf[(h.head+h.size-1)%len(h.buf)], true
}

// Len returns the number of stored readings.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Stats returns the minimum and maximum over valid readings. ok is
// false when the ring holds no valid reading at all.
func (h *History) Stats() (min, max float64, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for i := 0; i < h.size; i++ {
		r := h.buf[(h.head+i)%len(h.buf)]
		if !r.Valid {
			continue
		}
		if !ok || r.Value < min {
			min = r.Value
		}
		if !ok || r.Value > max {
			max = r.Value
		}
		ok = true
	}
	return min, max, ok
}
