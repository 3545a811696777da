// Package actuator drives environment variables toward target values in
// bounded random steps, writing every intermediate value back.
package actuator

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// minProgressFraction is the smallest share of a step a real-valued move may take
const minProgressFraction = 0.1

// StepObserver is called after every intermediate write
type StepObserver func(v domain.Variable, value float64)

// Actuator is bound to one variable of one environment.
// Its bounds are the environment's valid range, so every draw it writes is
// accepted by the enforcing setter.
type Actuator struct {
	name     string
	spec     domain.Spec
	env      *domain.Environment
	rnd      ports.RandomSource
	observer StepObserver
}

// Option configures an Actuator
type Option func(*Actuator)

// WithObserver registers a callback for every intermediate value
func WithObserver(fn StepObserver) Option {
	return func(a *Actuator) {
		a.observer = fn
	}
}

// New creates an actuator for v
func New(name string, v domain.Variable, env *domain.Environment, rnd ports.RandomSource, opts ...Option) (*Actuator, error) {
	spec, err := domain.SpecFor(v)
	if err != nil {
		return nil, err
	}
	if env == nil || rnd == nil {
		return nil, fmt.Errorf("actuator %s: environment and random source are required", name)
	}

	a := &Actuator{
		name: name,
		spec: spec,
		env:  env,
		rnd:  rnd,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewHeater creates the temperature actuator
func NewHeater(env *domain.Environment, rnd ports.RandomSource, opts ...Option) (*Actuator, error) {
	return New("heater", domain.Temperature, env, rnd, opts...)
}

// NewHumidifier creates the humidity actuator
func NewHumidifier(env *domain.Environment, rnd ports.RandomSource, opts ...Option) (*Actuator, error) {
	return New("humidifier", domain.Humidity, env, rnd, opts...)
}

// NewLights creates the light actuator
func NewLights(env *domain.Environment, rnd ports.RandomSource, opts ...Option) (*Actuator, error) {
	return New("lights", domain.Light, env, rnd, opts...)
}

// NewSet creates heater, humidifier and lights keyed by variable
func NewSet(env *domain.Environment, rnd ports.RandomSource, opts ...Option) (map[domain.Variable]ports.Actuator, error) {
	constructors := []func(*domain.Environment, ports.RandomSource, ...Option) (*Actuator, error){
		NewHeater, NewHumidifier, NewLights,
	}

	set := make(map[domain.Variable]ports.Actuator, len(constructors))
	for _, build := range constructors {
		a, err := build(env, rnd, opts...)
		if err != nil {
			return nil, err
		}
		set[a.Variable()] = a
	}
	return set, nil
}

// Name returns the actuator's device name
func (a *Actuator) Name() string {
	return a.name
}

// Variable returns the variable this actuator drives
func (a *Actuator) Variable() domain.Variable {
	return a.spec.Variable
}

// Converge moves the environment to target, clamped to the valid range.
// A rejected intermediate write is logged and the walk continues from the
// actuator's own last value.
func (a *Actuator) Converge(target float64) (domain.Actuation, error) {
	v := a.spec.Variable
	if err := domain.CheckKind(v, target); err != nil {
		return domain.Actuation{}, fmt.Errorf("%s target: %w", a.name, err)
	}
	target = a.spec.Valid.Clamp(target)

	current, err := a.env.Get(v)
	if err != nil {
		return domain.Actuation{}, fmt.Errorf("%s read: %w", a.name, err)
	}

	result := domain.Actuation{Variable: v, From: current, Target: target}
	for current != target {
		current = a.next(current, target)
		result.Steps++

		if err := a.env.Set(v, current); err != nil {
			result.Failures++
			log.Error().
				Err(err).
				Str("actuator", a.name).
				Float64("value", current).
				Msg("failed to update environment")
		}
		if a.observer != nil {
			a.observer(v, current)
		}
	}

	log.Debug().
		Str("actuator", a.name).
		Float64("from", result.From).
		Float64("target", target).
		Int("steps", result.Steps).
		Msg("converged")

	return result, nil
}

// next draws the following value within one step of current, toward target
func (a *Actuator) next(current, target float64) float64 {
	minProgress := a.spec.Step * minProgressFraction
	if a.spec.Integer {
		minProgress = 1
	}

	if current > target {
		draw := a.drawBetween(current-a.spec.Step, current)
		if current-draw < minProgress {
			draw = current - minProgress
		}
		if draw <= target {
			return target
		}
		return draw
	}

	draw := a.drawBetween(current, current+a.spec.Step)
	if draw-current < minProgress {
		draw = current + minProgress
	}
	if draw >= target {
		return target
	}
	return draw
}

func (a *Actuator) drawBetween(lo, hi float64) float64 {
	if a.spec.Integer {
		return domain.FromInt(a.rnd.IntBetween(int(lo), int(hi)))
	}
	return a.rnd.Float64Between(lo, hi)
}
