package simulator

import (
	"context"
	"fmt"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// Source selects where sensors read from
type Source string

const (
	// SourceSimulator perturbs the environment on every read
	SourceSimulator Source = "simulator"
	// SourceDirect reads the environment as is
	SourceDirect Source = "direct"
)

// NoiseSensor reads a variable through the noise simulator
type NoiseSensor struct {
	variable domain.Variable
	noise    *Noise
}

// Variable returns the measured variable
func (s *NoiseSensor) Variable() domain.Variable {
	return s.variable
}

// Read perturbs the environment and returns the new value
func (s *NoiseSensor) Read(ctx context.Context) (float64, error) {
	return s.noise.Perturb(s.variable)
}

// DirectSensor reads a variable straight from the environment
type DirectSensor struct {
	variable domain.Variable
	env      *domain.Environment
}

// Variable returns the measured variable
func (s *DirectSensor) Variable() domain.Variable {
	return s.variable
}

// Read returns the stored value
func (s *DirectSensor) Read(ctx context.Context) (float64, error) {
	return s.env.Get(s.variable)
}

// NewSensors creates one sensor per variable for the chosen source.
// rnd is only used by the simulator source.
func NewSensors(source Source, env *domain.Environment, rnd ports.RandomSource) ([]ports.Sensor, error) {
	var noise *Noise
	switch source {
	case SourceSimulator:
		noise = NewNoise(env, rnd)
	case SourceDirect:
	default:
		return nil, &UnknownSourceError{Source: string(source)}
	}

	sensors := make([]ports.Sensor, 0, len(domain.Variables))
	for _, v := range domain.Variables {
		if noise != nil {
			sensors = append(sensors, &NoiseSensor{variable: v, noise: noise})
		} else {
			sensors = append(sensors, &DirectSensor{variable: v, env: env})
		}
	}
	return sensors, nil
}

// UnknownSourceError is returned for an unsupported sensor source
type UnknownSourceError struct {
	Source string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown sensor source %q (want simulator or direct)", e.Source)
}
