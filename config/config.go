// Package config loads settings for the precedence CLI from defaults, an
// optional YAML file and PRECEDENCE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/precedence/ingest"
	"github.com/katalvlaran/precedence/logger"
	"github.com/katalvlaran/precedence/resolver"
)

// EnvPrefix is prepended to every environment override, e.g.
// PRECEDENCE_STRATEGY or PRECEDENCE_LOG_LEVEL.
const EnvPrefix = "PRECEDENCE"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all settings.
type Config struct {
	Strategy   string    `mapstructure:"strategy"`
	Workers    int       `mapstructure:"workers"`
	BestEffort bool      `mapstructure:"best_effort"`
	Format     string    `mapstructure:"format"`
	Log        LogConfig `mapstructure:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// setDefaults registers the built-in values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("strategy", resolver.StrategyTopological.String())
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("best_effort", false)
	v.SetDefault("format", string(ingest.FormatText))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logger.FormatConsole)
}

// Load reads configuration. Precedence (highest to lowest):
//  1. Environment variables (PRECEDENCE_STRATEGY, PRECEDENCE_LOG_LEVEL, ...)
//  2. The file at path, if path is not empty
//  3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	if _, err := resolver.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: strategy: %v", ErrInvalid, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if _, err := ingest.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: format: %v", ErrInvalid, err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	switch c.Log.Format {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}

	return nil
}

// ResolverStrategy returns the parsed strategy. Call after Validate.
func (c *Config) ResolverStrategy() resolver.Strategy {
	s, _ := resolver.ParseStrategy(c.Strategy)

	return s
}

// InputFormat returns the parsed input format. Call after Validate.
func (c *Config) InputFormat() ingest.Format {
	f, _ := ingest.ParseFormat(c.Format)

	return f
}
