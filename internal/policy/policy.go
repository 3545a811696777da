// Package policy decides, per variable and per tick, whether an actuator
// must run and toward which target.
package policy

import (
	"fmt"
	"strings"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// Mode selects a policy strategy
type Mode string

const (
	ModeSetpoint Mode = "setpoint"
	ModeIdeal    Mode = "ideal"
	ModeHybrid   Mode = "hybrid"
)

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeSetpoint, ModeIdeal, ModeHybrid:
		return m, nil
	}
	return "", fmt.Errorf("unknown policy mode %q (want setpoint, ideal or hybrid)", s)
}

// New builds the policy for mode
func New(mode Mode, settings *domain.UserSettings, bands domain.IdealBands) (ports.Policy, error) {
	switch mode {
	case ModeSetpoint:
		return NewSetpoint(settings), nil
	case ModeIdeal:
		return NewIdeal(bands)
	case ModeHybrid:
		ideal, err := NewIdeal(bands)
		if err != nil {
			return nil, err
		}
		return NewHybrid(NewSetpoint(settings), ideal), nil
	}
	return nil, fmt.Errorf("unknown policy mode %q", mode)
}
