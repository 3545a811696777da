package random

import "sync"

// Script replays fixed draws, for tests and reproducible demos.
// Values are clamped into the requested bounds. Once a queue is
// exhausted the lower bound is returned.
type Script struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
}

// NewScript creates a source that returns floats and ints in order
func NewScript(floats []float64, ints []int) *Script {
	return &Script{floats: floats, ints: ints}
}

// Float64Between returns the next scripted float
func (s *Script) Float64Between(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.floats) == 0 {
		return lo
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return min(max(v, lo), hi)
}

// IntBetween returns the next scripted int
func (s *Script) IntBetween(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ints) == 0 {
		return lo
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return min(max(v, lo), hi)
}

// Remaining returns how many scripted draws are still queued
func (s *Script) Remaining() (floats, ints int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.floats), len(s.ints)
}
