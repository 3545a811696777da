package ports

import (
	"context"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
)

// Frame is the set of readings the display receives each tick
type Frame struct {
	RunID    string
	Tick     int
	Readings domain.Readings
	// Missing lists variables whose sensor read failed this tick
	Missing []domain.Variable
}

// Display presents readings and warnings to the user
// This is a PORT - adapters (console) will implement it
type Display interface {
	// Show presents the readings taken at the start of a tick
	Show(ctx context.Context, frame Frame) error

	// Warn presents the ideal-band state of one variable
	Warn(ctx context.Context, v domain.Variable, w domain.Warning) error
}

// Setpoint is one user request: a target for a variable, or a clear when Clear is set
type Setpoint struct {
	Variable domain.Variable
	Value    float64
	Clear    bool
}

// SetpointSource delivers batches of setpoints submitted by the user
type SetpointSource interface {
	// Setpoints returns a channel closed when input ends or ctx is done
	Setpoints(ctx context.Context) <-chan []Setpoint
}
