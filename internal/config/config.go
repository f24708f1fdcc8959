// Package config loads nfhcheck settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rfielding/kripke-nfh/nfh"
)

// Config holds all nfhcheck configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
	Batch   BatchConfig   `yaml:"batch"`
}

// SearchConfig configures the run search.
type SearchConfig struct {
	Timeout        string `yaml:"timeout" validate:"required"`
	DisableTimeout bool   `yaml:"disable_timeout"`
	DisableMemo    bool   `yaml:"disable_memo"`
	Mode           string `yaml:"mode" validate:"oneof=async sync asynchronous synchronous"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Parallel int `yaml:"parallel" validate:"gte=1,lte=256"`
}

var validate = validator.New()

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Timeout: nfh.DefaultTimeout.String(),
			Mode:    "async",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Batch: BatchConfig{
			Parallel: 4,
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("NFH_TIMEOUT"); v != "" {
		c.Search.Timeout = v
	}
	if v := os.Getenv("NFH_DISABLE_TIMEOUT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NFH_DISABLE_TIMEOUT: %w", err)
		}
		c.Search.DisableTimeout = b
	}
	if v := os.Getenv("NFH_DISABLE_MEMO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NFH_DISABLE_MEMO: %w", err)
		}
		c.Search.DisableMemo = b
	}
	if v := os.Getenv("NFH_MODE"); v != "" {
		c.Search.Mode = v
	}
	if v := os.Getenv("NFH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("NFH_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("NFH_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NFH_PARALLEL: %w", err)
		}
		c.Batch.Parallel = n
	}
	return nil
}

// Validate checks field constraints and that the timeout parses.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.SearchTimeout(); err != nil {
		return err
	}
	return nil
}

// SearchTimeout returns the per-search timeout as a duration.
func (c *Config) SearchTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Search.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid search timeout %q: %w", c.Search.Timeout, err)
	}
	return d, nil
}

// SearchOptions converts the search settings into checker options.
func (c *Config) SearchOptions() ([]nfh.Option, error) {
	d, err := c.SearchTimeout()
	if err != nil {
		return nil, err
	}
	mode, err := nfh.ParseMode(c.Search.Mode)
	if err != nil {
		return nil, err
	}
	opts := []nfh.Option{nfh.WithTimeout(d), nfh.WithMode(mode)}
	if c.Search.DisableTimeout {
		opts = append(opts, nfh.WithoutTimeout())
	}
	if c.Search.DisableMemo {
		opts = append(opts, nfh.WithoutMemo())
	}
	return opts, nil
}
