// Package config holds the explicit runtime configuration. Everything is
// loaded once at startup and passed down; no package reads the
// environment after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration for the warehouse server.
type Config struct {
	// DBPath is the SQLite database file path.
	DBPath string
	// Addr is the HTTP listen address.
	Addr string
	// AdminName is the bootstrap admin display name on first run.
	AdminName string
	// LogPath optionally mirrors logs to a file.
	LogPath string
	// HistoryRetention is how long audit entries are kept before the
	// batch sweep purges them. Zero disables the sweep entirely.
	HistoryRetention time.Duration
	// SweepInterval is how often the retention sweep runs.
	SweepInterval time.Duration
}

// Defaults.
const (
	DefaultDBPath           = "warehouse.sqlite3"
	DefaultAddr             = ":8080"
	DefaultAdminName        = "Admin"
	DefaultRetentionDays    = 14
	DefaultSweepInterval    = 6 * time.Hour
	retentionDaysEnv        = "WAREHOUSE_RETENTION_DAYS"
	dbPathEnv               = "WAREHOUSE_DB"
	addrEnv                 = "WAREHOUSE_ADDR"
	adminNameEnv            = "WAREHOUSE_ADMIN_NAME"
	logPathEnv              = "WAREHOUSE_LOG"
	sweepIntervalMinutesEnv = "WAREHOUSE_SWEEP_MINUTES"
)

// Load builds a Config from a .env file (if present) and the process
// environment. Callers apply flag overrides on the returned struct.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:           envOr(dbPathEnv, DefaultDBPath),
		Addr:             envOr(addrEnv, DefaultAddr),
		AdminName:        envOr(adminNameEnv, DefaultAdminName),
		LogPath:          os.Getenv(logPathEnv),
		HistoryRetention: DefaultRetentionDays * 24 * time.Hour,
		SweepInterval:    DefaultSweepInterval,
	}

	if v := os.Getenv(retentionDaysEnv); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return nil, fmt.Errorf("invalid %s: %q", retentionDaysEnv, v)
		}
		cfg.HistoryRetention = time.Duration(days) * 24 * time.Hour
	}

	if v := os.Getenv(sweepIntervalMinutesEnv); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", sweepIntervalMinutesEnv, v)
		}
		cfg.SweepInterval = time.Duration(minutes) * time.Minute
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
