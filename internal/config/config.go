// Package config provides layered configuration for dayaim: built-in
// defaults, then the YAML config file, then DAYAIM_* environment variables.
// Command-line flags are applied on top by the cmd package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/model"
)

// AppName is the directory name used under the XDG config home.
const AppName = "dayaim"

// Storage backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Output formats.
const (
	FormatCLI   = "cli"
	FormatJSON  = "json"
	FormatPlain = "plain"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds every configurable value.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Planner PlannerConfig `yaml:"planner"`
	Output  OutputConfig  `yaml:"output"`
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Backend selects the substrate: "badger" or "sqlite".
	// Default: badger
	Backend string `yaml:"backend"`

	// Path is the database location. Empty uses the backend's XDG default.
	Path string `yaml:"path"`

	// MinFreeSpace is the minimum free space required for write operations.
	// Default: 10MB (10 * 1024 * 1024 bytes)
	MinFreeSpace uint64 `yaml:"min_free_space"`

	// MinFreeSpaceWarning is the threshold for warning about low disk space.
	// Default: 50MB (50 * 1024 * 1024 bytes)
	MinFreeSpaceWarning uint64 `yaml:"min_free_space_warning"`
}

// PlannerConfig holds planning behaviour.
type PlannerConfig struct {
	// DefaultSource is the planned source given to tasks added without one.
	// Default: MANUAL
	DefaultSource string `yaml:"default_source"`

	// DayStartHour is the local hour at which "today" rolls over.
	// Default: 0 (midnight)
	DayStartHour int `yaml:"day_start_hour"`

	// RefreshInterval is how often the dashboard checks for a new day.
	// Default: 1m
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// OutputConfig holds output defaults.
type OutputConfig struct {
	// Format is one of cli, json, plain.
	// Default: cli
	Format string `yaml:"format"`

	// Color is one of auto, always, never.
	// Default: auto
	Color string `yaml:"color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:             BackendBadger,
			MinFreeSpace:        10 * 1024 * 1024, // 10MB
			MinFreeSpaceWarning: 50 * 1024 * 1024, // 50MB
		},
		Planner: PlannerConfig{
			DefaultSource:   string(model.PlannedSourceManual),
			DayStartHour:    0,
			RefreshInterval: time.Minute,
		},
		Output: OutputConfig{
			Format: FormatCLI,
			Color:  ColorAuto,
		},
	}
}

// DefaultFile returns the config file path. DAYAIM_CONFIG overrides the XDG
// location.
func DefaultFile() string {
	if v := os.Getenv("DAYAIM_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load builds the configuration from defaults, the file at path (DefaultFile
// when empty) and the environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile()
	}

	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewSystemErrorWithOp("load config", "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.NewUserErrorWithField("config", path,
			fmt.Sprintf("Invalid config file: %v", err),
			"Fix the YAML syntax or remove the file to use defaults")
	}
	return nil
}

// loadFromEnv applies DAYAIM_* overrides. Malformed numbers are rejected
// rather than ignored.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("DAYAIM_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("DAYAIM_DATABASE"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("DAYAIM_MIN_FREE_SPACE"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return envError("DAYAIM_MIN_FREE_SPACE", v, "a byte count")
		}
		c.Storage.MinFreeSpace = n
	}
	if v := os.Getenv("DAYAIM_MIN_FREE_SPACE_WARNING"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return envError("DAYAIM_MIN_FREE_SPACE_WARNING", v, "a byte count")
		}
		c.Storage.MinFreeSpaceWarning = n
	}

	if v := os.Getenv("DAYAIM_DEFAULT_SOURCE"); v != "" {
		c.Planner.DefaultSource = v
	}
	if v := os.Getenv("DAYAIM_DAY_START_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("DAYAIM_DAY_START_HOUR", v, "an hour from 0 to 23")
		}
		c.Planner.DayStartHour = n
	}
	if v := os.Getenv("DAYAIM_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError("DAYAIM_REFRESH_INTERVAL", v, "a duration such as 30s")
		}
		c.Planner.RefreshInterval = d
	}

	if v := os.Getenv("DAYAIM_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("DAYAIM_COLOR"); v != "" {
		c.Output.Color = v
	}
	return nil
}

func envError(name, value, want string) error {
	return errors.NewUserErrorWithField(name, value,
		fmt.Sprintf("Invalid %s", name),
		fmt.Sprintf("Set %s to %s", name, want))
}

// Validate checks that enumerated values are known.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendBadger, BackendSQLite:
	default:
		return errors.NewUserErrorWithField("backend", c.Storage.Backend,
			"Unknown storage backend", "Use 'badger' or 'sqlite'")
	}

	if !model.PlannedSource(c.Planner.DefaultSource).Valid() {
		return errors.NewUserErrorWithField("default_source", c.Planner.DefaultSource,
			"Unknown planned source", "Use EVENING, MORNING or MANUAL")
	}
	if c.Planner.DayStartHour < 0 || c.Planner.DayStartHour > 23 {
		return errors.NewUserErrorWithField("day_start_hour", strconv.Itoa(c.Planner.DayStartHour),
			"Day start hour out of range", "Use an hour from 0 to 23")
	}
	if c.Planner.RefreshInterval < time.Second {
		c.Planner.RefreshInterval = time.Second
	}

	switch c.Output.Format {
	case FormatCLI, FormatJSON, FormatPlain:
	default:
		return errors.NewUserErrorWithField("format", c.Output.Format,
			"Unknown output format", "Use cli, json or plain")
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.NewUserErrorWithField("color", c.Output.Color,
			"Unknown color mode", "Use auto, always or never")
	}
	return nil
}

// Today returns the current planning date. Before DayStartHour the previous
// calendar day is still "today".
func (c *Config) Today(now time.Time) model.Date {
	return model.DateOf(now.Add(-time.Duration(c.Planner.DayStartHour) * time.Hour))
}

// Save writes the configuration as YAML to path, creating its directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
