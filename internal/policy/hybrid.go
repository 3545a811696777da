package policy

import (
	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// Hybrid applies the user's target where one is set and the ideal band elsewhere
type Hybrid struct {
	setpoint *Setpoint
	ideal    *Ideal
}

// NewHybrid combines both strategies
func NewHybrid(setpoint *Setpoint, ideal *Ideal) *Hybrid {
	return &Hybrid{setpoint: setpoint, ideal: ideal}
}

// Name returns the policy name
func (p *Hybrid) Name() string {
	return string(ModeHybrid)
}

// Decide delegates per variable
func (p *Hybrid) Decide(v domain.Variable, reading float64) (ports.Decision, error) {
	if p.setpoint.HasTarget(v) {
		return p.setpoint.Decide(v, reading)
	}
	return p.ideal.Decide(v, reading)
}
