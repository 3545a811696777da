package ports

import "github.com/quentinrf/greenhouse-controller/internal/domain"

// Actuator moves one variable to a target value
// This is a PORT - the actuator package implements it
type Actuator interface {
	Variable() domain.Variable

	// Converge blocks until the environment holds the (clamped) target
	Converge(target float64) (domain.Actuation, error)
}
