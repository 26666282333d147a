package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != DefaultDBPath {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.HistoryRetention != DefaultRetentionDays*24*time.Hour {
		t.Errorf("expected 14-day retention, got %v", cfg.HistoryRetention)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(dbPathEnv, "/tmp/other.sqlite3")
	t.Setenv(retentionDaysEnv, "7")
	t.Setenv(sweepIntervalMinutesEnv, "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/other.sqlite3" {
		t.Errorf("expected env db path, got %q", cfg.DBPath)
	}
	if cfg.HistoryRetention != 7*24*time.Hour {
		t.Errorf("expected 7-day retention, got %v", cfg.HistoryRetention)
	}
	if cfg.SweepInterval != 30*time.Minute {
		t.Errorf("expected 30m sweep interval, got %v", cfg.SweepInterval)
	}
}

func TestLoadRetentionZeroDisablesSweep(t *testing.T) {
	t.Setenv(retentionDaysEnv, "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HistoryRetention != 0 {
		t.Errorf("expected zero retention, got %v", cfg.HistoryRetention)
	}
}

func TestLoadInvalidRetention(t *testing.T) {
	t.Setenv(retentionDaysEnv, "soon")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid retention")
	}
}
