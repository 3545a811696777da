package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quentinrf/greenhouse-controller/internal/config"
	"github.com/quentinrf/greenhouse-controller/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		envFile    string
		setpoints  []string
	)

	rootCmd := &cobra.Command{
		Use:   "greenhouse",
		Short: "Greenhouse environment controller simulation",
		Long: `greenhouse simulates a greenhouse control loop.

Temperature, humidity and light drift with simulated sensor noise while the
heater, humidifier and lights steer them back toward user setpoints or the
ideal band. With --interactive, setpoints are read from stdin as lines like
"temperature=22.5 humidity=70" or "clear light".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, envFile)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, &cfg, setpoints); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info().Str("version", version).Msg("starting greenhouse controller")
			return run(ctx, cfg, os.Stdin, cmd.OutOrStdout())
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file with GREENHOUSE_* variables")
	flags.String("policy", "", "control policy: setpoint, ideal or hybrid")
	flags.String("source", "", "sensor source: simulator or direct")
	flags.Int("ticks", 0, "number of ticks to run (0 runs until interrupted)")
	flags.Duration("interval", 0, "pause between ticks")
	flags.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	flags.String("history", "", "tick journal: memory, sqlite or none")
	flags.String("history-dsn", "", "SQLite DSN for the journal (default in-memory)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: console or json")
	flags.Bool("interactive", false, "read setpoints from stdin")
	flags.StringArrayVar(&setpoints, "set", nil, "initial setpoint name=value (repeatable)")

	rootCmd.AddCommand(newVersionCmd(), newHistoryCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "greenhouse version %s\n", version)
		},
	}
}

// applyFlags overrides cfg with every flag the user set explicitly
func applyFlags(cmd *cobra.Command, cfg *config.Config, setpoints []string) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("policy") {
		cfg.Policy, err = flags.GetString("policy")
	}
	if err == nil && flags.Changed("source") {
		cfg.Source, err = flags.GetString("source")
	}
	if err == nil && flags.Changed("ticks") {
		cfg.Ticks, err = flags.GetInt("ticks")
	}
	if err == nil && flags.Changed("interval") {
		cfg.Interval, err = flags.GetDuration("interval")
	}
	if err == nil && flags.Changed("seed") {
		cfg.Seed, err = flags.GetUint64("seed")
	}
	if err == nil && flags.Changed("history") {
		cfg.History.Backend, err = flags.GetString("history")
	}
	if err == nil && flags.Changed("history-dsn") {
		cfg.History.DSN, err = flags.GetString("history-dsn")
	}
	if err == nil && flags.Changed("log-level") {
		cfg.Log.Level, err = flags.GetString("log-level")
	}
	if err == nil && flags.Changed("log-format") {
		cfg.Log.Format, err = flags.GetString("log-format")
	}
	if err == nil && flags.Changed("interactive") {
		cfg.Interactive, err = flags.GetBool("interactive")
	}
	if err != nil {
		return err
	}

	for _, sp := range setpoints {
		name, value, ok := strings.Cut(sp, "=")
		if !ok || name == "" {
			return fmt.Errorf("--set expects name=value, got %q", sp)
		}
		if cfg.Setpoints == nil {
			cfg.Setpoints = make(map[string]string)
		}
		cfg.Setpoints[name] = value
	}
	return nil
}

