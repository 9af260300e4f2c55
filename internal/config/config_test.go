package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"ALPHA_VANTAGE_API_KEY", "ALPHA_VANTAGE_BASE_URL", "FETCH_TIMEOUT", "FETCH_RATE_PER_MIN",
		"FETCH_MAX_RETRIES", "HOST", "PORT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
		"CLASSIFIER_ENABLED", "SYNTHETIC_SEED", "SYNTHETIC_ROWS", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	if cfg.AlphaVantageBaseURL != "https://www.alphavantage.co" {
		t.Errorf("AlphaVantageBaseURL = %q", cfg.AlphaVantageBaseURL)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", cfg.FetchTimeout)
	}
	if cfg.FetchRatePerMin != 5 || cfg.FetchMaxRetries != 0 {
		t.Errorf("fetch rate/retries = %d/%d, want 5/0", cfg.FetchRatePerMin, cfg.FetchMaxRetries)
	}
	if cfg.Host != "127.0.0.1" || cfg.Port != 8001 {
		t.Errorf("address = %s:%d, want 127.0.0.1:8001", cfg.Host, cfg.Port)
	}
	if !cfg.ClassifierEnabled {
		t.Error("ClassifierEnabled = false, want true")
	}
	if cfg.SyntheticSeed != 42 || cfg.SyntheticRows != 200 {
		t.Errorf("synthetic = %d/%d, want 42/200", cfg.SyntheticSeed, cfg.SyntheticRows)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ALPHA_VANTAGE_API_KEY", "secret")
	t.Setenv("FETCH_TIMEOUT", "3")
	t.Setenv("SHUTDOWN_TIMEOUT", "1500ms")
	t.Setenv("PORT", "9000")
	t.Setenv("CLASSIFIER_ENABLED", "false")
	t.Setenv("SYNTHETIC_ROWS", "not-a-number")

	cfg := FromEnv()
	if cfg.AlphaVantageAPIKey != "secret" {
		t.Errorf("AlphaVantageAPIKey = %q", cfg.AlphaVantageAPIKey)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.FetchTimeout)
	}
	if cfg.ShutdownTimeout != 1500*time.Millisecond {
		t.Errorf("ShutdownTimeout = %v, want 1.5s", cfg.ShutdownTimeout)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.ClassifierEnabled {
		t.Error("ClassifierEnabled = true, want false")
	}
	if cfg.SyntheticRows != 200 {
		t.Errorf("SyntheticRows = %d, want default 200 for invalid input", cfg.SyntheticRows)
	}
}
