package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Variable names one environment quantity tracked by the greenhouse
type Variable string

const (
	Temperature Variable = "temperature"
	Humidity    Variable = "humidity"
	Light       Variable = "light"
)

// Variables lists every variable in control order
var Variables = []Variable{Temperature, Humidity, Light}

// Range is an inclusive [Min, Max] interval
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether value lies inside the range
func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

// Clamp returns value limited to the range
func (r Range) Clamp(value float64) float64 {
	if value < r.Min {
		return r.Min
	}
	if value > r.Max {
		return r.Max
	}
	return value
}

// Spec holds the fixed physical limits of one variable
type Spec struct {
	Variable Variable
	Unit     string
	Integer  bool
	Valid    Range
	// Step is the largest change one actuator or noise step may apply
	Step float64
	// Threshold is the deviation a user setpoint must exceed before acting
	Threshold float64
}

var specs = map[Variable]Spec{
	Temperature: {Variable: Temperature, Unit: "°C", Integer: false, Valid: Range{15.0, 40.0}, Step: 0.3, Threshold: 1.0},
	Humidity:    {Variable: Humidity, Unit: "%", Integer: true, Valid: Range{40, 100}, Step: 2, Threshold: 2},
	Light:       {Variable: Light, Unit: "", Integer: true, Valid: Range{100, 850}, Step: 10, Threshold: 5},
}

// SpecFor returns the limits for a variable
func SpecFor(v Variable) (Spec, error) {
	s, ok := specs[v]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownVariable, string(v))
	}
	return s, nil
}

// ParseVariable maps a name (or a short alias) to a Variable
func ParseVariable(name string) (Variable, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "temperature", "temp", "t":
		return Temperature, nil
	case "humidity", "hum", "h":
		return Humidity, nil
	case "light", "lights", "l":
		return Light, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariable, name)
}

// FromInt widens an integer reading to the common float representation
func FromInt(value int) float64 {
	return float64(value)
}

// CheckKind verifies value is representable for the variable.
// Integer variables accept only integral values.
func CheckKind(v Variable, value float64) error {
	s, err := SpecFor(v)
	if err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrTypeConversion, v)
	}
	if s.Integer && value != math.Trunc(value) {
		return fmt.Errorf("%w: %s must be an integer, got %v", ErrTypeConversion, v, value)
	}
	return nil
}

// ParseValue converts user text into a value for the variable
func ParseValue(v Variable, text string) (float64, error) {
	s, err := SpecFor(v)
	if err != nil {
		return 0, err
	}
	text = strings.TrimSpace(text)
	if s.Integer {
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, fmt.Errorf("%w: %s expects an integer, got %q", ErrTypeConversion, v, text)
		}
		return FromInt(n), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s expects a number, got %q", ErrTypeConversion, v, text)
	}
	if err := CheckKind(v, f); err != nil {
		return 0, err
	}
	return f, nil
}

// FormatValue renders a value the way the variable is displayed
func FormatValue(v Variable, value float64) string {
	s, err := SpecFor(v)
	if err != nil || !s.Integer {
		return strconv.FormatFloat(value, 'f', 2, 64)
	}
	return strconv.FormatInt(int64(value), 10)
}
