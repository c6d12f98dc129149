package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tzneal/mgrs"
)

type Config struct {
	Accuracy int       `yaml:"accuracy"`
	Compact  bool      `yaml:"compact"`
	Datum    string    `yaml:"datum"`
	Log      LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Accuracy == 0 {
		cfg.Accuracy = 1
	}
	if cfg.Datum == "" {
		cfg.Datum = mgrs.DatumWGS84.String()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Validate checks the fields that Load does not default.
func (c Config) Validate() error {
	if _, err := mgrs.AccuracyFromMeters(c.Accuracy); err != nil {
		return fmt.Errorf("accuracy must be one of 1, 10, 100, 1000, 10000: %w", err)
	}
	if _, err := mgrs.ParseDatum(c.Datum); err != nil {
		return fmt.Errorf("datum: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", c.Log.Format)
	}
	return nil
}

// MGRSAccuracy returns the configured accuracy.
func (c Config) MGRSAccuracy() (mgrs.Accuracy, error) {
	acc, err := mgrs.AccuracyFromMeters(c.Accuracy)
	if err != nil {
		return mgrs.AccuracyInvalid, fmt.Errorf("accuracy: %w", err)
	}
	return acc, nil
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", level)
}
