package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "LOG_LEVEL", "PRUNE_CUTOFF_HOUR", "PRUNE_CUTOFF_MINUTE",
		"PRUNE_JITTER", "READ_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"SHUTDOWN_TIMEOUT",
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.PruneCutoffHour != 16 || cfg.PruneCutoffMinute != 0 {
		t.Errorf("cutoff = %d:%d, want 16:0", cfg.PruneCutoffHour, cfg.PruneCutoffMinute)
	}
	if cfg.PruneJitter != 100*time.Millisecond {
		t.Errorf("PruneJitter = %v, want 100ms", cfg.PruneJitter)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want error for invalid LOG_LEVEL")
	}
}

func TestLoad_InvalidCutoffHour(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRUNE_CUTOFF_HOUR", "24")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want error for out-of-range PRUNE_CUTOFF_HOUR")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRUNE_JITTER", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want error for malformed PRUNE_JITTER")
	}
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("PRUNE_CUTOFF_HOUR", "20")
	t.Setenv("PRUNE_CUTOFF_MINUTE", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.PruneCutoffHour != 20 || cfg.PruneCutoffMinute != 30 {
		t.Errorf("cutoff = %d:%d, want 20:30", cfg.PruneCutoffHour, cfg.PruneCutoffMinute)
	}
}
