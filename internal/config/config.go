// Package config loads CLI-host settings from the environment. Library
// packages never read env vars; their defaults live in code and this
// package only maps the outside world onto them.
package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	"goinsight/app"
	"goinsight/internal/errors"
)

// envPrefix namespaces every variable, e.g. INSIGHT_LOGGING_LEVEL.
const envPrefix = "INSIGHT"

// Config is the complete CLI-host configuration.
type Config struct {
	Logging  LoggingConfig  `envconfig:"LOGGING"`
	Analysis AnalysisConfig `envconfig:"ANALYSIS"`
}

// LoggingConfig selects handler format and verbosity.
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
}

// AnalysisConfig mirrors app.AutoAnalysisConfig one field at a time, so
// the sweep can be tuned without rebuilding.
type AnalysisConfig struct {
	MaxColumns      int     `envconfig:"MAX_COLUMNS" default:"5"`
	MinRows         int     `envconfig:"MIN_ROWS" default:"10"`
	ConfidenceLevel float64 `envconfig:"CONFIDENCE_LEVEL" default:"0.95"`
	Parallelism     int     `envconfig:"PARALLELISM" default:"0"`
	Seed            int64   `envconfig:"SEED" default:"0"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "load configuration from environment")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unknown log level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unknown log format %q", c.Logging.Format))
	}
	if c.Analysis.ConfidenceLevel <= 0 || c.Analysis.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid(fmt.Sprintf("confidence level %v outside (0, 1)", c.Analysis.ConfidenceLevel))
	}
	if c.Analysis.MaxColumns < 1 {
		return errors.ConfigInvalid("max columns must be at least 1")
	}
	if c.Analysis.MinRows < 2 {
		return errors.ConfigInvalid("min rows must be at least 2")
	}
	return nil
}

// AutoAnalysis converts the env-facing block into the service config.
func (c *Config) AutoAnalysis() app.AutoAnalysisConfig {
	return app.AutoAnalysisConfig{
		MaxColumns:      c.Analysis.MaxColumns,
		MinRows:         c.Analysis.MinRows,
		ConfidenceLevel: c.Analysis.ConfidenceLevel,
		Parallelism:     c.Analysis.Parallelism,
		Seed:            c.Analysis.Seed,
	}
}

// Logger builds the slog handler the configuration asks for.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
