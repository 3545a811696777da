package domain

import (
	"slices"
	"time"
)

// Snapshot records the state of the greenhouse at one control tick
type Snapshot struct {
	ID        int64
	RunID     string
	Tick      int
	Readings  Readings
	Warnings  map[Variable]Warning
	Actuated  []Variable
	// Missing lists variables whose sensor read failed; their readings are zero
	Missing   []Variable
	Timestamp time.Time
}

// NewSnapshot creates a snapshot stamped with the current time
func NewSnapshot(runID string, tick int, readings Readings) *Snapshot {
	return &Snapshot{
		RunID:     runID,
		Tick:      tick,
		Readings:  readings,
		Warnings:  make(map[Variable]Warning, len(Variables)),
		Timestamp: time.Now(),
	}
}

// WasRead reports whether v holds a sensor reading
func (s *Snapshot) WasRead(v Variable) bool {
	return !slices.Contains(s.Missing, v)
}

// HasWarnings returns true if any variable left its ideal band
func (s *Snapshot) HasWarnings() bool {
	for _, w := range s.Warnings {
		if w == WarningHigh || w == WarningLow {
			return true
		}
	}
	return false
}

// Actuation describes one completed actuator run
type Actuation struct {
	Variable Variable
	From     float64
	Target   float64
	Steps    int
	// Failures counts intermediate writes the environment rejected
	Failures int
}
