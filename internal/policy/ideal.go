package policy

import (
	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// Ideal keeps each variable inside its ideal band by driving it to the
// nearest band edge
type Ideal struct {
	bands domain.IdealBands
}

// NewIdeal creates a band policy; bands are copied and validated
func NewIdeal(bands domain.IdealBands) (*Ideal, error) {
	if err := bands.Validate(); err != nil {
		return nil, err
	}
	copied := make(domain.IdealBands, len(bands))
	for v, r := range bands {
		copied[v] = r
	}
	return &Ideal{bands: copied}, nil
}

// Name returns the policy name
func (p *Ideal) Name() string {
	return string(ModeIdeal)
}

// Decide classifies reading and targets the violated edge
func (p *Ideal) Decide(v domain.Variable, reading float64) (ports.Decision, error) {
	w, err := p.bands.Classify(v, reading)
	if err != nil {
		return ports.Decision{}, err
	}

	d := ports.Decision{Variable: v, Warning: w}
	switch w {
	case domain.WarningHigh:
		d.Act, d.Target = true, p.bands[v].Max
	case domain.WarningLow:
		d.Act, d.Target = true, p.bands[v].Min
	}
	return d, nil
}
