// Package history provides the bounded rolling window of past sensor
// readings for one monitoring session. The window holds four parallel
// series (time, temperature, gas, helmet violations); storing them as one
// entry per row makes the equal-length invariant structural, so a push can
// never leave the series out of step.
//
// The store is session-scoped: it starts empty and is never persisted.
package history

import (
	"sync"
	"time"
)

// DefaultCapacity is the rolling window size used when no capacity is configured.
const DefaultCapacity = 60

// Entry is one row of the rolling window: a successful reading folded into
// all four series at once.
type Entry struct {
	Time             time.Time `json:"time"`
	Temperature      float64   `json:"temperature"`
	GasLevel         float64   `json:"gas_level"`
	HelmetViolations int       `json:"helmet_violations"`
}

// Store is a fixed-capacity FIFO window of entries. When a push would
// exceed capacity, the oldest entry is evicted.
type Store struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
}

// New creates an empty store with the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

// Push appends an entry, evicting the oldest when the window is full.
func (s *Store) Push(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.capacity {
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:len(s.entries)-1]
	}
	s.entries = append(s.entries, e)
}

// Snapshot returns a copy of the most recent n entries in chronological
// order, or all entries when n exceeds the current length or is not positive.
func (s *Store) Snapshot(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

// Series returns copies of all four parallel series in chronological order.
// The returned slices always have equal length.
func (s *Store) Series() (times []time.Time, temps, gases []float64, helmets []float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	times = make([]time.Time, n)
	temps = make([]float64, n)
	gases = make([]float64, n)
	helmets = make([]float64, n)
	for i, e := range s.entries {
		times[i] = e.Time
		temps[i] = e.Temperature
		gases[i] = e.GasLevel
		helmets[i] = float64(e.HelmetViolations)
	}
	return times, temps, gases, helmets
}

// Len returns the number of entries currently in the window.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// IsEmpty reports whether no readings have been folded in yet.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Capacity returns the configured window bound.
func (s *Store) Capacity() int {
	return s.capacity
}
