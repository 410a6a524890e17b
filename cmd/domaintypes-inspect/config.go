package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/AntonStoeckl/domain-types-go/guard"
)

// ErrInvalidConfig is returned when an environment variable holds an unsupported value.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"

	logFormatText = "text"
	logFormatJSON = "json"
)

// Config holds all settings of the command.
type Config struct {
	Format       string        `env:"DOMAINTYPES_FORMAT" envDefault:"table"`
	LogLevel     string        `env:"DOMAINTYPES_LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"DOMAINTYPES_LOG_FORMAT" envDefault:"text"`
	Samples      bool          `env:"DOMAINTYPES_SAMPLES" envDefault:"false"`
	Parallelism  int64         `env:"DOMAINTYPES_PARALLELISM" envDefault:"4"`
	OTLPEndpoint string        `env:"DOMAINTYPES_OTLP_ENDPOINT"`
	Timeout      time.Duration `env:"DOMAINTYPES_TIMEOUT" envDefault:"30s"`
}

// loadConfig parses the environment and validates the result.
func loadConfig() (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if !slices.Contains([]string{formatTable, formatJSON, formatYAML}, c.Format) {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("unsupported output format %q", c.Format))
	}

	if !slices.Contains([]string{logFormatText, logFormatJSON}, c.LogFormat) {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("unsupported log format %q", c.LogFormat))
	}

	if _, err := c.level(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	if err := guard.Positive("parallelism", c.Parallelism); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	if err := guard.Positive("timeout", c.Timeout); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// level maps LogLevel to a slog.Level; the names are case-insensitive.
func (c Config) level() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unsupported log level %q", c.LogLevel)
	}

	return level, nil
}
