package ports

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
)

// State of a control loop
type State int32

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// LoopConfig holds the collaborators of a control loop
type LoopConfig struct {
	Sensors   []Sensor
	Actuators map[domain.Variable]Actuator
	Policy    Policy
	Display   Display
	// History is optional; every tick is journaled when set
	History domain.HistoryRepository
	// Interval paces ticks for humans; zero disables pacing
	Interval time.Duration
}

// Loop reads sensors, shows readings and runs the policy once per variable
// every tick
type Loop struct {
	cfg   LoopConfig
	runID string
	// variables no sensor covers, reported missing every tick
	unsensed []domain.Variable
	state atomic.Int32
	stop  atomic.Bool
	ticks atomic.Int64
}

// NewLoop creates a control loop in the Stopped state
func NewLoop(cfg LoopConfig) (*Loop, error) {
	if len(cfg.Sensors) == 0 {
		return nil, errors.New("control loop needs at least one sensor")
	}
	if cfg.Policy == nil {
		return nil, errors.New("control loop needs a policy")
	}
	for _, s := range cfg.Sensors {
		if _, ok := cfg.Actuators[s.Variable()]; !ok {
			return nil, fmt.Errorf("no actuator for %s", s.Variable())
		}
	}

	l := &Loop{cfg: cfg, runID: xid.New().String()}
	for _, v := range domain.Variables {
		if !slices.ContainsFunc(cfg.Sensors, func(s Sensor) bool { return s.Variable() == v }) {
			l.unsensed = append(l.unsensed, v)
		}
	}
	return l, nil
}

// RunID identifies this loop in logs and history
func (l *Loop) RunID() string {
	return l.runID
}

// State returns whether the loop is running
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Ticks returns how many ticks have completed
func (l *Loop) Ticks() int {
	return int(l.ticks.Load())
}

// Stop asks the loop to end before its next tick
func (l *Loop) Stop() {
	l.stop.Store(true)
}

// Run executes ticks until count ticks are done (count > 0), Stop is
// called or ctx is cancelled. count == 0 runs until stopped.
func (l *Loop) Run(ctx context.Context, count int) error {
	if count < 0 {
		return fmt.Errorf("tick count must not be negative, got %d", count)
	}
	if !l.state.CompareAndSwap(int32(Stopped), int32(Running)) {
		return errors.New("control loop already running")
	}
	defer l.state.Store(int32(Stopped))
	l.stop.Store(false)

	log.Info().
		Str("run_id", l.runID).
		Str("policy", l.cfg.Policy.Name()).
		Int("ticks", count).
		Dur("interval", l.cfg.Interval).
		Msg("starting control loop")

	for tick := 1; count == 0 || tick <= count; tick++ {
		if l.stop.Load() || ctx.Err() != nil {
			break
		}

		l.tickOnce(ctx, tick)
		l.ticks.Add(1)

		if l.cfg.Interval > 0 && (count == 0 || tick < count) {
			timer := time.NewTimer(l.cfg.Interval)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
			}
		}
	}

	log.Info().
		Str("run_id", l.runID).
		Int("ticks", l.Ticks()).
		Msg("stopping control loop")

	return nil
}

// tickOnce runs one control cycle. Failures are logged per variable and
// never stop the other variables.
func (l *Loop) tickOnce(ctx context.Context, tick int) {
	readings := domain.Readings{}
	missing := slices.Clone(l.unsensed)
	for _, s := range l.cfg.Sensors {
		value, err := s.Read(ctx)
		if err != nil {
			log.Error().Err(err).Str("variable", string(s.Variable())).Msg("failed to read sensor")
			missing = append(missing, s.Variable())
			continue
		}
		readings = readings.With(s.Variable(), value)
	}

	if l.cfg.Display != nil {
		frame := Frame{RunID: l.runID, Tick: tick, Readings: readings, Missing: missing}
		if err := l.cfg.Display.Show(ctx, frame); err != nil {
			log.Error().Err(err).Msg("failed to show readings")
		}
	}

	snapshot := domain.NewSnapshot(l.runID, tick, readings)
	snapshot.Missing = missing
	for _, s := range l.cfg.Sensors {
		v := s.Variable()
		if !snapshot.WasRead(v) {
			continue
		}
		value, _ := readings.Value(v)

		decision, err := l.cfg.Policy.Decide(v, value)
		if err != nil {
			log.Error().Err(err).Str("variable", string(v)).Msg("policy failed")
			continue
		}

		if decision.Warning != "" {
			snapshot.Warnings[v] = decision.Warning
			if l.cfg.Display != nil {
				if err := l.cfg.Display.Warn(ctx, v, decision.Warning); err != nil {
					log.Error().Err(err).Msg("failed to show warning")
				}
			}
		}

		if !decision.Act {
			continue
		}
		result, err := l.cfg.Actuators[v].Converge(decision.Target)
		if err != nil {
			log.Error().Err(err).Str("variable", string(v)).Msg("actuator failed")
			continue
		}
		snapshot.Actuated = append(snapshot.Actuated, v)
		log.Info().
			Int("tick", tick).
			Str("variable", string(v)).
			Float64("from", result.From).
			Float64("target", result.Target).
			Int("steps", result.Steps).
			Msg("actuated")
	}

	if l.cfg.History != nil {
		if err := l.cfg.History.SaveSnapshot(ctx, snapshot); err != nil {
			log.Error().Err(err).Int("tick", tick).Msg("failed to save snapshot")
		}
	}
}
