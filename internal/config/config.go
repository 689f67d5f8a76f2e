// Package config loads scamcheck settings from YAML, .env files and the
// environment. Later sources override earlier ones; command-line flags are
// applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/scamcheck/internal/history"
	"github.com/dshills/scamcheck/internal/indicators"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "SCAMCHECK_"

// Config holds runtime settings.
type Config struct {
	Delay       time.Duration `yaml:"delay"`
	Seed        *uint64       `yaml:"seed"`
	HistorySize int           `yaml:"history_size"`
	Profile     string        `yaml:"profile"`
	ProfileFile string        `yaml:"profile_file"`
	Format      string        `yaml:"format"`
	Log         LogConfig     `yaml:"log"`
}

// LogConfig selects log verbosity and an optional log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Delay:       2 * time.Second,
		HistorySize: history.DefaultCapacity,
		Profile:     indicators.DefaultName,
		Format:      "text",
		Log:         LogConfig{Level: "warn"},
	}
}

// Load returns Default overlaid with the YAML file at path.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDotEnv exports variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config.LoadDotEnv: %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from SCAMCHECK_* variables found by lookup
// (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(v)
		return v, v != ""
	}

	if v, ok := get("DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sDELAY: %w", EnvPrefix, err)
		}
		c.Delay = d
	}
	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %sSEED: %w", EnvPrefix, err)
		}
		c.Seed = &n
	}
	if v, ok := get("HISTORY_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sHISTORY_SIZE: %w", EnvPrefix, err)
		}
		c.HistorySize = n
	}
	if v, ok := get("PROFILE"); ok {
		c.Profile = v
	}
	if v, ok := get("PROFILE_FILE"); ok {
		c.ProfileFile = v
	}
	if v, ok := get("FORMAT"); ok {
		c.Format = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_FILE"); ok {
		c.Log.File = v
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Delay < 0 {
		return fmt.Errorf("config: delay must not be negative")
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("config: history_size must not be negative")
	}
	switch c.Format {
	case "text", "md", "json":
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	return nil
}

// LoadProfile resolves the configured indicator profile, preferring
// ProfileFile over the built-in name.
func (c *Config) LoadProfile() (*indicators.Profile, error) {
	if c.ProfileFile != "" {
		return indicators.Load(c.ProfileFile)
	}
	name := c.Profile
	if name == "" {
		name = indicators.DefaultName
	}
	return indicators.LoadBuiltin(name)
}
