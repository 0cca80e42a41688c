// Package config loads the pipette command configuration.
//
// Values are resolved from, in increasing priority: built-in defaults, an
// optional YAML/JSON config file, an optional .env file, the process
// environment (PIPETTE_ prefix, e.g. PIPETTE_LOGGING_LEVEL) and explicitly
// set command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/KasperOmsK/pipette/internal/logging"
)

const EnvPrefix = "PIPETTE"

// Config is the full command configuration.
type Config struct {
	Logging logging.Config `yaml:"logging" mapstructure:"logging"`
	Dataset DatasetConfig  `yaml:"dataset" mapstructure:"dataset"`
}

// DatasetConfig selects the records to run and how many top values to keep.
type DatasetConfig struct {
	// Path of a dataset file; empty selects the built-in records.
	Path  string `yaml:"path" mapstructure:"path"`
	Limit int    `yaml:"limit" mapstructure:"limit"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	c.Logging.ApplyDefaults()
	if c.Dataset.Limit == 0 {
		c.Dataset.Limit = 10
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if c.Dataset.Limit < 1 {
		return fmt.Errorf("dataset.limit must be positive (got: %d)", c.Dataset.Limit)
	}
	return nil
}

// defaults registers every known key, which is also what lets environment
// variables reach Unmarshal.
var defaults = map[string]any{
	"logging.level":     "info",
	"logging.format":    "console",
	"logging.output":    "stderr",
	"logging.no_color":  false,
	"logging.timestamp": true,
	"dataset.path":      "",
	"dataset.limit":     10,
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level": "logging.level",
	"dataset":   "dataset.path",
	"limit":     "dataset.limit",
}

// LoaderConfig holds optional sources for Load.
type LoaderConfig struct {
	ConfigFile string
	EnvFile    string
	Flags      *pflag.FlagSet
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets a YAML or JSON config file to read.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets a .env file to read. Its entries never override
// variables already present in the process environment.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithFlags makes flags that were set on the command line take precedence
// over every other source.
func WithFlags(fs *pflag.FlagSet) LoaderOption {
	return func(lc *LoaderConfig) { lc.Flags = fs }
}

// Load resolves, defaults and validates the configuration.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", lc.ConfigFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if lc.EnvFile != "" {
		if err := applyEnvFile(v, lc.EnvFile); err != nil {
			return nil, err
		}
	}

	if lc.Flags != nil {
		for name, key := range flagKeys {
			if f := lc.Flags.Lookup(name); f != nil && f.Changed {
				v.Set(key, f.Value.String())
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyEnvFile layers the PIPETTE_ entries of a .env file under the process
// environment without modifying it.
func applyEnvFile(v *viper.Viper, path string) error {
	entries, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	for key := range defaults {
		name := EnvVar(key)
		value, ok := entries[name]
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		v.Set(key, value)
	}
	return nil
}

// EnvVar returns the environment variable that sets key, e.g.
// "dataset.limit" is read from PIPETTE_DATASET_LIMIT.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
