package ports

import (
	"context"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
)

// Sensor defines how to read one environment variable
// This is a PORT - adapters (simulator, direct) will implement it
type Sensor interface {
	// Variable returns the variable this sensor measures
	Variable() domain.Variable

	// Read returns the current value
	Read(ctx context.Context) (float64, error)
}

// RandomSource supplies the draws used by actuators and the noise simulator.
// Implementations must return values inside the requested inclusive bounds.
type RandomSource interface {
	// Float64Between returns a value in [lo, hi]
	Float64Between(lo, hi float64) float64

	// IntBetween returns an integer in [lo, hi]
	IntBetween(lo, hi int) int
}
