package policy

import (
	"math"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// thresholdTolerance absorbs binary rounding of two-decimal deviations
const thresholdTolerance = 1e-9

// Setpoint acts when a reading strays from the user's target by more than
// the variable's activation threshold. Variables without a target are left idle.
type Setpoint struct {
	settings *domain.UserSettings
}

// NewSetpoint creates a policy reading targets from settings
func NewSetpoint(settings *domain.UserSettings) *Setpoint {
	return &Setpoint{settings: settings}
}

// Name returns the policy name
func (p *Setpoint) Name() string {
	return string(ModeSetpoint)
}

// Decide compares reading to the user target.
// A deviation exactly at the threshold does not act.
func (p *Setpoint) Decide(v domain.Variable, reading float64) (ports.Decision, error) {
	spec, err := domain.SpecFor(v)
	if err != nil {
		return ports.Decision{}, err
	}

	d := ports.Decision{Variable: v}
	target, ok := p.settings.Get(v)
	if !ok {
		return d, nil
	}

	d.Target = target
	d.Act = math.Abs(reading-target)-spec.Threshold > thresholdTolerance
	return d, nil
}

// HasTarget reports whether the user set a target for v
func (p *Setpoint) HasTarget(v domain.Variable) bool {
	_, ok := p.settings.Get(v)
	return ok
}
