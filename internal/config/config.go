// Package config loads controller settings from defaults, an optional YAML
// file, an optional .env file and GREENHOUSE_* environment variables, in
// that order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/quentinrf/greenhouse-controller/internal/adapters/simulator"
	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/policy"
)

const envPrefix = "GREENHOUSE_"

// Config holds application configuration
type Config struct {
	Initial     Initial           `yaml:"initial"`
	Bands       map[string]Band   `yaml:"bands"`
	Policy      string            `yaml:"policy"` // "setpoint" | "ideal" | "hybrid"
	Source      string            `yaml:"source"` // "simulator" | "direct"
	Ticks       int               `yaml:"ticks"`  // 0 runs until interrupted
	Interval    time.Duration     `yaml:"interval"`
	Seed        uint64            `yaml:"seed"` // 0 picks a time-based seed
	Setpoints   map[string]string `yaml:"setpoints"`
	Interactive bool              `yaml:"interactive"`
	History     History           `yaml:"history"`
	Log         Log               `yaml:"log"`
}

// Initial holds the starting environment
type Initial struct {
	Temperature float64 `yaml:"temperature"`
	Humidity    int     `yaml:"humidity"`
	Light       int     `yaml:"light"`
}

// Band is one ideal band override
type Band struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

// History selects the tick journal backend
type History struct {
	Backend string `yaml:"backend"` // "memory" | "sqlite" | "none"
	DSN     string `yaml:"dsn"`
}

// Log configures zerolog output
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" | "json"
}

// Default returns the built-in configuration
func Default() Config {
	bands := make(map[string]Band, len(domain.Variables))
	for v, r := range domain.DefaultIdealBands() {
		bands[string(v)] = Band{Lower: r.Min, Upper: r.Max}
	}

	return Config{
		Initial:  Initial{Temperature: 25.0, Humidity: 60, Light: 550},
		Bands:    bands,
		Policy:   string(policy.ModeHybrid),
		Source:   string(simulator.SourceSimulator),
		Ticks:    20,
		Interval: time.Second,
		History:  History{Backend: "memory"},
		Log:      Log{Level: "info", Format: "console"},
	}
}

// Load builds a configuration. path and envFile may be empty; a missing
// envFile is not an error.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	// decoding over the current values keeps defaults for absent keys
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(envPrefix + key)
		return v, ok && v != ""
	}

	if v, ok := get("POLICY"); ok {
		c.Policy = v
	}
	if v, ok := get("SOURCE"); ok {
		c.Source = v
	}
	if v, ok := get("TICKS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sTICKS: %w", envPrefix, err)
		}
		c.Ticks = n
	}
	if v, ok := get("INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sINTERVAL: %w", envPrefix, err)
		}
		c.Interval = d
	}
	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", envPrefix, err)
		}
		c.Seed = n
	}
	if v, ok := get("HISTORY"); ok {
		c.History.Backend = v
	}
	if v, ok := get("HISTORY_DSN"); ok {
		c.History.DSN = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	return nil
}

// IdealBands converts the band overrides to domain bands
func (c Config) IdealBands() (domain.IdealBands, error) {
	bands := domain.DefaultIdealBands()
	for name, b := range c.Bands {
		v, err := domain.ParseVariable(name)
		if err != nil {
			return nil, fmt.Errorf("bands: %w", err)
		}
		bands[v] = domain.Range{Min: b.Lower, Max: b.Upper}
	}
	if err := bands.Validate(); err != nil {
		return nil, err
	}
	return bands, nil
}

// UserSetpoints parses the configured initial setpoints
func (c Config) UserSetpoints() (map[domain.Variable]float64, error) {
	out := make(map[domain.Variable]float64, len(c.Setpoints))
	for name, text := range c.Setpoints {
		v, err := domain.ParseVariable(name)
		if err != nil {
			return nil, fmt.Errorf("setpoints: %w", err)
		}
		value, err := domain.ParseValue(v, text)
		if err != nil {
			return nil, fmt.Errorf("setpoints: %w", err)
		}
		out[v] = value
	}
	return out, nil
}

// Validate rejects configurations the controller cannot run
func (c Config) Validate() error {
	if _, err := policy.ParseMode(c.Policy); err != nil {
		return err
	}
	switch simulator.Source(c.Source) {
	case simulator.SourceSimulator, simulator.SourceDirect:
	default:
		return &simulator.UnknownSourceError{Source: c.Source}
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", c.Ticks)
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %s", c.Interval)
	}
	switch c.History.Backend {
	case "memory", "sqlite", "none":
	default:
		return fmt.Errorf("unknown history backend %q (want memory, sqlite or none)", c.History.Backend)
	}
	if _, err := domain.NewEnvironment(c.Initial.Temperature, c.Initial.Humidity, c.Initial.Light); err != nil {
		return err
	}
	if _, err := c.IdealBands(); err != nil {
		return err
	}
	if _, err := c.UserSetpoints(); err != nil {
		return err
	}
	return nil
}
