package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-controller/internal/actuator"
	"github.com/quentinrf/greenhouse-controller/internal/adapters/console"
	"github.com/quentinrf/greenhouse-controller/internal/adapters/memory"
	"github.com/quentinrf/greenhouse-controller/internal/adapters/random"
	"github.com/quentinrf/greenhouse-controller/internal/adapters/simulator"
	"github.com/quentinrf/greenhouse-controller/internal/adapters/sqlite"
	"github.com/quentinrf/greenhouse-controller/internal/config"
	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/policy"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// run wires the controller from a validated config and blocks until the
// loop ends
func run(ctx context.Context, cfg config.Config, stdin io.Reader, stdout io.Writer) error {
	env, err := domain.NewEnvironment(cfg.Initial.Temperature, cfg.Initial.Humidity, cfg.Initial.Light)
	if err != nil {
		return err
	}

	settings := domain.NewUserSettings()
	initial, err := cfg.UserSetpoints()
	if err != nil {
		return err
	}
	for v, target := range initial {
		if err := settings.Set(v, target); err != nil {
			return err
		}
	}

	bands, err := cfg.IdealBands()
	if err != nil {
		return err
	}
	mode, err := policy.ParseMode(cfg.Policy)
	if err != nil {
		return err
	}
	p, err := policy.New(mode, settings, bands)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rnd := random.NewSource(seed)
	log.Info().Uint64("seed", seed).Msg("initialized random source")

	sensors, err := simulator.NewSensors(simulator.Source(cfg.Source), env, rnd)
	if err != nil {
		return err
	}
	actuators, err := actuator.NewSet(env, rnd)
	if err != nil {
		return err
	}

	// Initialize repository
	var history domain.HistoryRepository
	switch cfg.History.Backend {
	case "sqlite":
		r, err := sqlite.NewHistoryRepository(cfg.History.DSN)
		if err != nil {
			return fmt.Errorf("failed to open SQLite journal: %w", err)
		}
		defer r.Close()
		history = r
		log.Info().Str("dsn", dsnOrMemory(cfg.History.DSN)).Msg("initialized SQLite journal")
	case "memory":
		history = memory.NewHistoryRepository()
		log.Info().Msg("initialized in-memory journal")
	}

	display := console.NewDisplay(stdout)
	loop, err := ports.NewLoop(ports.LoopConfig{
		Sensors:   sensors,
		Actuators: actuators,
		Policy:    p,
		Display:   display,
		History:   history,
		Interval:  cfg.Interval,
	})
	if err != nil {
		return err
	}

	inputCtx, stopInput := context.WithCancel(ctx)
	defer stopInput()
	if cfg.Interactive {
		go ports.ApplySetpoints(inputCtx, console.NewInput(stdin), settings)
	}

	if err := loop.Run(ctx, cfg.Ticks); err != nil {
		return err
	}
	if err := display.Flush(); err != nil {
		return err
	}

	if history != nil {
		// the run context may already be cancelled by a signal
		snapshots, err := history.GetRun(context.Background(), loop.RunID())
		if err != nil {
			return fmt.Errorf("failed to read journal: %w", err)
		}
		printSummary(stdout, snapshots)
	}
	return nil
}

func printSummary(w io.Writer, snapshots []*domain.Snapshot) {
	stats := domain.Summarize(snapshots)

	warned, actuated := 0, 0
	for _, s := range snapshots {
		if s.HasWarnings() {
			warned++
		}
		actuated += len(s.Actuated)
	}

	fmt.Fprintf(w, "summary: %d ticks, %d with warnings, %d actuations\n", len(snapshots), warned, actuated)
	for _, v := range domain.Variables {
		st, ok := stats[v]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-12s avg=%.2f min=%s max=%s\n", v, st.Average,
			domain.FormatValue(v, st.Min), domain.FormatValue(v, st.Max))
	}
}

func dsnOrMemory(dsn string) string {
	if dsn == "" {
		return sqlite.MemoryDSN
	}
	return dsn
}
