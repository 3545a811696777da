package domain

import (
	"errors"
	"math"
	"testing"
)

func newTestEnvironment(t *testing.T) *Environment {
	t.Helper()
	env, err := NewEnvironment(25.0, 60, 550)
	if err != nil {
		t.Fatalf("failed to create environment: %v", err)
	}
	return env
}

func TestNewEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		humidity    int
		light       int
		wantErr     error
	}{
		{name: "default values", temperature: 25.0, humidity: 60, light: 550},
		{name: "lower bounds", temperature: 15.0, humidity: 40, light: 100},
		{name: "upper bounds", temperature: 40.0, humidity: 100, light: 850},
		{name: "temperature too high", temperature: 40.1, humidity: 60, light: 550, wantErr: ErrOutOfRange},
		{name: "humidity too low", temperature: 25.0, humidity: 39, light: 550, wantErr: ErrOutOfRange},
		{name: "light too high", temperature: 25.0, humidity: 60, light: 851, wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := NewEnvironment(tt.temperature, tt.humidity, tt.light)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := env.Readings()
			want := Readings{Temperature: tt.temperature, Humidity: tt.humidity, Light: tt.light}
			if got != want {
				t.Errorf("expected readings %+v, got %+v", want, got)
			}
		})
	}
}

func TestEnvironment_SetGetRoundTrip(t *testing.T) {
	env := newTestEnvironment(t)

	tests := []struct {
		variable Variable
		value    float64
	}{
		{Temperature, 20.5},
		{Temperature, 15.0},
		{Temperature, 40.0},
		{Humidity, 70},
		{Humidity, 100},
		{Light, 600},
		{Light, 100},
	}

	for _, tt := range tests {
		t.Run(string(tt.variable), func(t *testing.T) {
			if err := env.Set(tt.variable, tt.value); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			got, err := env.Get(tt.variable)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != tt.value {
				t.Errorf("expected %v, got %v", tt.value, got)
			}
		})
	}
}

func TestEnvironment_SetRejects(t *testing.T) {
	tests := []struct {
		name     string
		variable Variable
		value    float64
		wantErr  error
	}{
		{name: "unknown variable", variable: "x", value: 1, wantErr: ErrUnknownVariable},
		{name: "temperature above range", variable: Temperature, value: 41, wantErr: ErrOutOfRange},
		{name: "temperature below range", variable: Temperature, value: 14.99, wantErr: ErrOutOfRange},
		{name: "humidity above range", variable: Humidity, value: 101, wantErr: ErrOutOfRange},
		{name: "light below range", variable: Light, value: 99, wantErr: ErrOutOfRange},
		{name: "fractional humidity", variable: Humidity, value: 70.5, wantErr: ErrTypeConversion},
		{name: "NaN temperature", variable: Temperature, value: math.NaN(), wantErr: ErrTypeConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnvironment(t)
			before := env.Readings()

			err := env.Set(tt.variable, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if after := env.Readings(); after != before {
				t.Errorf("rejected write changed environment: %+v -> %+v", before, after)
			}
		})
	}
}

func TestEnvironment_GetUnknownVariable(t *testing.T) {
	env := newTestEnvironment(t)

	if _, err := env.Get("x"); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("expected ErrUnknownVariable, got %v", err)
	}
}

func TestEnvironment_Clamp(t *testing.T) {
	tests := []struct {
		variable Variable
		value    float64
		want     float64
	}{
		{Temperature, 45.0, 40.0},
		{Temperature, 10.0, 15.0},
		{Temperature, 22.2, 22.2},
		{Humidity, 120, 100},
		{Humidity, 0, 40},
		{Light, 900, 850},
		{Light, 50, 100},
	}

	for _, tt := range tests {
		t.Run(string(tt.variable), func(t *testing.T) {
			env := newTestEnvironment(t)

			got, err := env.Clamp(tt.variable, tt.value)
			if err != nil {
				t.Fatalf("Clamp failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.value, got, tt.want)
			}
			stored, _ := env.Get(tt.variable)
			if stored != tt.want {
				t.Errorf("stored %v, want %v", stored, tt.want)
			}
		})
	}
}
