package config

import (
	"fmt"
	"os"
	"strconv"
)

// LoadFromEnv applies environment overrides on top of cfg. A malformed
// value is a startup error rather than being silently ignored: the daemon
// refuses to run with a guessed configuration.
func LoadFromEnv(cfg *Config) error {
	if interval := os.Getenv("TIMETRACKD_SAMPLE_INTERVAL"); interval != "" {
		seconds, err := strconv.ParseInt(interval, 10, 64)
		if err != nil || seconds < 0 {
			return fmt.Errorf("TIMETRACKD_SAMPLE_INTERVAL has to be a positive integer, got '%s'", interval)
		}
		cfg.SampleInterval = seconds
	}

	if dbPath := os.Getenv("TIMETRACKD_DB_PATH"); dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	if dbType := os.Getenv("TIMETRACKD_DB_TYPE"); dbType != "" {
		cfg.DatabaseType = DatabaseType(dbType)
	}

	if pidFile := os.Getenv("TIMETRACKD_PID_FILE"); pidFile != "" {
		cfg.PIDFile = pidFile
	}

	return nil
}
