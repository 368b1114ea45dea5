// Package config loads mazepath settings from defaults, an optional YAML
// file, and MAZEPATH_* environment variables, in that order of precedence
// (later wins).
//
// Example file:
//
//	solver:
//	  step_cost: 1
//	  turn_cost: 1000
//	  max_distance: 0
//	  precheck: true
//	  extract_tiles: true
//	log:
//	  level: info
//	  format: text
//	server:
//	  addr: ":8080"
//	  max_body_bytes: 1048576
//	batch:
//	  workers: 4
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mazepath/maze"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete mazepath configuration.
type Config struct {
	Solver Solver `yaml:"solver"`
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	Batch  Batch  `yaml:"batch"`
}

// Solver configures a single query.
type Solver struct {
	// StepCost is the cost of moving forward one cell.
	StepCost int64 `yaml:"step_cost"`
	// TurnCost is the cost of a 90° turn in place.
	TurnCost int64 `yaml:"turn_cost"`
	// MaxDistance caps exploration; 0 disables the cap.
	MaxDistance int64 `yaml:"max_distance"`
	// Precheck rejects mazes whose start and goal lie in different regions
	// before running the solver.
	Precheck bool `yaml:"precheck"`
	// ExtractTiles runs the optimal-path extractor after the solver.
	ExtractTiles bool `yaml:"extract_tiles"`
}

// Log configures the slog handler.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// Batch configures concurrent solving of several mazes.
type Batch struct {
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solver: Solver{
			StepCost:     1,
			TurnCost:     1000,
			MaxDistance:  0,
			Precheck:     true,
			ExtractTiles: true,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
		Batch: Batch{
			Workers: 4,
		},
	}
}

// Load returns Default overlaid with the YAML file at path (skipped when
// path is empty or the file does not exist) and then the environment.
// The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := loadEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML data over Default and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	return decode(data, cfg)
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty document keeps defaults
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// loadEnv applies MAZEPATH_* overrides read through lookup.
func loadEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("MAZEPATH_LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup("MAZEPATH_LOG_FORMAT"); ok && v != "" {
		cfg.Log.Format = v
	}
	if v, ok := lookup("MAZEPATH_SERVER_ADDR"); ok && v != "" {
		cfg.Server.Addr = v
	}

	ints := []struct {
		key string
		dst *int64
	}{
		{"MAZEPATH_STEP_COST", &cfg.Solver.StepCost},
		{"MAZEPATH_TURN_COST", &cfg.Solver.TurnCost},
		{"MAZEPATH_MAX_DISTANCE", &cfg.Solver.MaxDistance},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, e.key, v, err)
		}
		*e.dst = n
	}

	if v, ok := lookup("MAZEPATH_BATCH_WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: MAZEPATH_BATCH_WORKERS=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Batch.Workers = n
	}

	return nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Solver.StepCost <= 0 || c.Solver.StepCost > maze.MaxCost {
		errs = append(errs, fmt.Errorf("solver.step_cost must be in [1, %d], got %d", maze.MaxCost, c.Solver.StepCost))
	}
	if c.Solver.TurnCost <= 0 || c.Solver.TurnCost > maze.MaxCost {
		errs = append(errs, fmt.Errorf("solver.turn_cost must be in [1, %d], got %d", maze.MaxCost, c.Solver.TurnCost))
	}
	if c.Solver.MaxDistance < 0 {
		errs = append(errs, fmt.Errorf("solver.max_distance must be non-negative, got %d", c.Solver.MaxDistance))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}
	if c.Batch.Workers < 1 {
		errs = append(errs, fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}
