package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "WEB_PORT", "API_KEY", "GEMINI_API_KEY", "GEMINI_MODEL", "AI_REQUEST_TIMEOUT",
		"CATALOG_PATH", "DATABASE_URL", "SESSION_IDLE_TTL", "SESSION_SWEEP_INTERVAL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.ListenAddr())
	}
	if cfg.APIKey != "" {
		t.Fatalf("expected empty api key to be tolerated, got %q", cfg.APIKey)
	}
	if cfg.AIRequestTimeout != 0 {
		t.Fatalf("expected no AI timeout by default, got %s", cfg.AIRequestTimeout)
	}
	if cfg.SessionIdleTTL != 2*time.Hour || cfg.SessionSweepInterval != 10*time.Minute {
		t.Fatalf("unexpected session defaults %s / %s", cfg.SessionIdleTTL, cfg.SessionSweepInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEB_PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "abc")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("AI_REQUEST_TIMEOUT", "20s")
	t.Setenv("CATALOG_PATH", "catalog.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.APIKey != "abc" || cfg.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected AI settings %q %q", cfg.APIKey, cfg.Model)
	}
	if cfg.AIRequestTimeout != 20*time.Second {
		t.Fatalf("expected 20s timeout, got %s", cfg.AIRequestTimeout)
	}
	if cfg.CatalogPath != "catalog.yaml" {
		t.Fatalf("expected catalog path, got %q", cfg.CatalogPath)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                   "abc",
		"AI_REQUEST_TIMEOUT":     "soon",
		"SESSION_IDLE_TTL":       "0s",
		"SESSION_SWEEP_INTERVAL": "-1m",
	}
	for key, val := range cases {
		clearEnv(t)
		t.Setenv(key, val)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for %s=%s", key, val)
		}
	}
}
