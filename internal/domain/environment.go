package domain

import (
	"fmt"
	"sync"
)

// Environment holds the current greenhouse readings.
// Every value stays inside its variable's valid range; all access goes
// through the mutex so the control loop and the input surface can share it.
type Environment struct {
	mu     sync.RWMutex
	values map[Variable]float64
}

// NewEnvironment creates an environment with validated initial values
func NewEnvironment(temperature float64, humidity, light int) (*Environment, error) {
	env := &Environment{values: make(map[Variable]float64, len(Variables))}

	initial := map[Variable]float64{
		Temperature: temperature,
		Humidity:    FromInt(humidity),
		Light:       FromInt(light),
	}
	for _, v := range Variables {
		if err := env.Set(v, initial[v]); err != nil {
			return nil, fmt.Errorf("initial %s: %w", v, err)
		}
	}

	return env, nil
}

// Get returns the current value of a variable
func (e *Environment) Get(v Variable) (float64, error) {
	if _, err := SpecFor(v); err != nil {
		return 0, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.values[v], nil
}

// Set writes a value, rejecting anything outside the valid range
func (e *Environment) Set(v Variable, value float64) error {
	s, err := SpecFor(v)
	if err != nil {
		return err
	}
	if err := CheckKind(v, value); err != nil {
		return err
	}
	if !s.Valid.Contains(value) {
		return fmt.Errorf("%w: %s=%s outside [%s, %s]", ErrOutOfRange, v,
			FormatValue(v, value), FormatValue(v, s.Valid.Min), FormatValue(v, s.Valid.Max))
	}

	e.mu.Lock()
	e.values[v] = value
	e.mu.Unlock()
	return nil
}

// Clamp writes value limited to the valid range and returns what was stored.
// Only the noise simulator writes through here.
func (e *Environment) Clamp(v Variable, value float64) (float64, error) {
	s, err := SpecFor(v)
	if err != nil {
		return 0, err
	}
	if err := CheckKind(v, value); err != nil {
		return 0, err
	}
	value = s.Valid.Clamp(value)

	e.mu.Lock()
	e.values[v] = value
	e.mu.Unlock()
	return value, nil
}

// Readings returns a consistent copy of all three values
func (e *Environment) Readings() Readings {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Readings{
		Temperature: e.values[Temperature],
		Humidity:    int(e.values[Humidity]),
		Light:       int(e.values[Light]),
	}
}

// Readings is one set of values for all variables
type Readings struct {
	Temperature float64
	Humidity    int
	Light       int
}

// Value returns the reading for v as a float
func (r Readings) Value(v Variable) (float64, error) {
	switch v {
	case Temperature:
		return r.Temperature, nil
	case Humidity:
		return FromInt(r.Humidity), nil
	case Light:
		return FromInt(r.Light), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariable, string(v))
}

// With returns a copy of r with v replaced
func (r Readings) With(v Variable, value float64) Readings {
	switch v {
	case Temperature:
		r.Temperature = value
	case Humidity:
		r.Humidity = int(value)
	case Light:
		r.Light = int(value)
	}
	return r
}
