package random

import (
	"math/rand/v2"
	"sync"
)

// Source implements ports.RandomSource with a seeded PCG generator
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource creates a source; the same seed always yields the same draws
func NewSource(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64Between returns a uniform value in [lo, hi]
func (s *Source) Float64Between(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

// IntBetween returns a uniform integer in [lo, hi]
func (s *Source) IntBetween(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.IntN(hi-lo+1)
}
