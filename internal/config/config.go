package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const configFileName = "timetrackd.toml"

// DatabaseType tags the storage backend a downstream persistence stage
// should use. The sampler itself never opens the database; the setting is
// validated here and carried through.
type DatabaseType string

const DatabaseSQLite DatabaseType = "sqlite"

// Config holds all daemon configuration. It is loaded once at startup and
// read-only afterwards.
type Config struct {
	// SampleInterval is the pause between ticks, in seconds.
	SampleInterval int64 `toml:"sample_interval"`

	// DatabasePath is where the downstream persistence stage writes.
	DatabasePath string `toml:"database_path"`

	// DatabaseType selects the persistence backend.
	DatabaseType DatabaseType `toml:"database_type"`

	// PIDFile is the path used for daemon management.
	PIDFile string `toml:"pid_file"`
}

// Default returns a Config with default values. It fails if the home
// directory cannot be resolved, since the default database path lives there.
func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "could not get home directory")
	}

	return &Config{
		SampleInterval: 5,
		DatabasePath:   filepath.Join(home, ".timetrackd.db"),
		DatabaseType:   DatabaseSQLite,
		PIDFile:        fmt.Sprintf("/tmp/timetrackd-%d.pid", os.Getuid()),
	}, nil
}

// Load builds the configuration from defaults, the user's config file and
// environment overrides, in that order. A missing config file only warns;
// an unresolvable config directory or a malformed file is a fatal load
// error, as is any invalid resulting value.
func Load() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, errors.Wrap(err, "could not get config directory")
	}
	return LoadFile(filepath.Join(configDir, configFileName))
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrapf(err, "could not parse config file '%s'", path)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Could not load config file '%s'\n", path)
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleInterval < 0 {
		return fmt.Errorf("sample_interval has to be a positive integer, got %d", c.SampleInterval)
	}

	if c.DatabasePath == "" {
		return fmt.Errorf("database_path cannot be empty")
	}

	if c.DatabaseType != DatabaseSQLite {
		return fmt.Errorf("database_type must be 'sqlite', got '%s'", c.DatabaseType)
	}

	if c.PIDFile == "" {
		return fmt.Errorf("pid_file cannot be empty")
	}

	return nil
}

// Interval returns the sample interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.SampleInterval) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Sample Interval: %v
  Database Path: %s
  Database Type: %s
  PID File: %s`,
		c.Interval(),
		c.DatabasePath,
		c.DatabaseType,
		c.PIDFile,
	)
}
