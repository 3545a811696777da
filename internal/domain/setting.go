package domain

import "sync"

// UserSettings holds optional per-variable targets submitted by the user.
// A set target overrides the ideal band for that variable.
type UserSettings struct {
	mu      sync.RWMutex
	targets map[Variable]float64
}

// NewUserSettings creates an empty settings record
func NewUserSettings() *UserSettings {
	return &UserSettings{targets: make(map[Variable]float64)}
}

// Set stores a target for v
func (s *UserSettings) Set(v Variable, target float64) error {
	if err := CheckKind(v, target); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets[v] = target
	return nil
}

// Clear removes the target for v
func (s *UserSettings) Clear(v Variable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.targets, v)
}

// Reset removes every target
func (s *UserSettings) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = make(map[Variable]float64)
}

// Get returns the target for v and whether one is set
func (s *UserSettings) Get(v Variable) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	target, ok := s.targets[v]
	return target, ok
}
