package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// DBPath is the sqlite database file holding schedules and view settings.
	DBPath string `yaml:"db_path" json:"db_path"`

	// Timezone is an informational IANA timezone label for display. All
	// schedule arithmetic is timezone-naive and runs in the process-local
	// zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	// RolloverCheck is a cron spec (with seconds) for the periodic
	// day-change poll that refreshes "today" without user interaction.
	RolloverCheck string `yaml:"rollover_check" json:"rollover_check"`

	// DefaultNotifyMinutes is the reminder offset applied to timed schedules
	// created by an ICS import. Zero disables it. Form-created schedules
	// carry only the offset the user typed.
	DefaultNotifyMinutes int `yaml:"default_notify_minutes" json:"default_notify_minutes"`

	// LogLevel is one of "debug", "info", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		DBPath:               "schedtrack.db",
		Timezone:             "Local",
		RolloverCheck:        "*/30 * * * * *",
		DefaultNotifyMinutes: 10,
		LogLevel:             "info",
	}
}

// Normalize fills in missing/zero values with defaults so partially filled
// configs from older versions still behave.
func (c *Config) Normalize() {
	if c.DBPath == "" {
		c.DBPath = "schedtrack.db"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.RolloverCheck == "" {
		c.RolloverCheck = "*/30 * * * * *"
	}
	if c.DefaultNotifyMinutes < 0 {
		c.DefaultNotifyMinutes = 0
	}
	switch c.LogLevel {
	case "debug", "info", "error":
	default:
		c.LogLevel = "info"
	}
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (parent
// directory created as needed, 0600 perms) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Return cfg with the error so the caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically: temp file in the target
// directory, 0600 perms, rename over the destination.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".schedtrack-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save delegates to the package-level Save, so call sites holding a *Config
// read naturally.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
