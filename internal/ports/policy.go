package ports

import "github.com/quentinrf/greenhouse-controller/internal/domain"

// Decision is the outcome of one policy evaluation
type Decision struct {
	Variable domain.Variable
	Act      bool
	Target   float64
	// Warning is empty when the policy does not classify the reading
	Warning domain.Warning
}

// Policy decides whether the actuator of a variable must run
// This is a PORT - strategies in the policy package implement it
type Policy interface {
	Name() string
	Decide(v domain.Variable, reading float64) (Decision, error)
}
