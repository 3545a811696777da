package simulator

import (
	"math"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// Noise simulates sensor drift by nudging environment values at random.
// Temperature drifts continuously, humidity and light in whole units, each
// by at most its variable's step.
type Noise struct {
	env *domain.Environment
	rnd ports.RandomSource
}

// NewNoise creates a simulator perturbing env
func NewNoise(env *domain.Environment, rnd ports.RandomSource) *Noise {
	return &Noise{env: env, rnd: rnd}
}

// Perturb applies one random delta to v, stores the clamped result and returns it
func (n *Noise) Perturb(v domain.Variable) (float64, error) {
	spec, err := domain.SpecFor(v)
	if err != nil {
		return 0, err
	}
	current, err := n.env.Get(v)
	if err != nil {
		return 0, err
	}

	var next float64
	if spec.Integer {
		step := int(spec.Step)
		next = current + domain.FromInt(n.rnd.IntBetween(-step, step))
	} else {
		next = math.Round((current+n.rnd.Float64Between(-spec.Step, spec.Step))*100) / 100
	}

	return n.env.Clamp(v, next)
}
