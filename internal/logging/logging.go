// Package logging builds the zerolog loggers used by the pipette command.
// The pipette library itself never logs.
package logging

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "disabled"}
	if !slices.Contains(validLevels, strings.ToLower(c.Level)) {
		return fmt.Errorf("logging.level must be one of %v (got: %s)", validLevels, c.Level)
	}
	validFormats := []string{"json", "console"}
	if !slices.Contains(validFormats, strings.ToLower(c.Format)) {
		return fmt.Errorf("logging.format must be one of %v (got: %s)", validFormats, c.Format)
	}
	validOutputs := []string{"stdout", "stderr"}
	if !slices.Contains(validOutputs, strings.ToLower(c.Output)) {
		return fmt.Errorf("logging.output must be one of %v (got: %s)", validOutputs, c.Output)
	}
	return nil
}

// New returns a logger writing to the configured output, tagged with
// component and a run id unique to this logger.
func New(cfg Config, component string) zerolog.Logger {
	return NewWithWriter(cfg, outputWriter(cfg.Output), component)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg Config, w io.Writer, component string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	if strings.ToLower(cfg.Format) == "console" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: time.TimeOnly}
	}

	zc := zerolog.New(w).Level(level).With().
		Str(FieldComponent, component).
		Str(FieldRunID, uuid.NewString())
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	return zc.Logger()
}

func outputWriter(output string) io.Writer {
	if strings.ToLower(output) == "stdout" {
		return os.Stdout
	}
	return os.Stderr
}
