package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Environment != "development" {
		t.Fatalf("expected development, got %q", cfg.Environment)
	}
	if cfg.Trash.RetentionDays != 90 {
		t.Fatalf("expected 90 retention days, got %d", cfg.Trash.RetentionDays)
	}
	if cfg.Logo.FetchTimeout != 10*time.Second {
		t.Fatalf("expected 10s logo fetch timeout, got %v", cfg.Logo.FetchTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OLIVER_ENV", "production")
	t.Setenv("OLIVER_TRASH_RETENTION_DAYS", "30")
	t.Setenv("OLIVER_LOGO_FETCH_TIMEOUT", "2s")
	t.Setenv("OLIVER_TRACING_ENABLED", "true")

	cfg := Load()
	if !cfg.IsProduction() {
		t.Fatalf("expected production environment")
	}
	if cfg.Trash.RetentionDays != 30 {
		t.Fatalf("expected 30 retention days, got %d", cfg.Trash.RetentionDays)
	}
	if cfg.Logo.FetchTimeout != 2*time.Second {
		t.Fatalf("expected 2s fetch timeout, got %v", cfg.Logo.FetchTimeout)
	}
	if !cfg.Tracing.Enabled {
		t.Fatalf("expected tracing enabled")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("OLIVER_TRASH_RETENTION_DAYS", "ninety")
	t.Setenv("OLIVER_TRACING_SAMPLING_RATIO", "a-lot")

	cfg := Load()
	if cfg.Trash.RetentionDays != 90 {
		t.Fatalf("expected fallback retention, got %d", cfg.Trash.RetentionDays)
	}
	if cfg.Tracing.SamplingRatio != 1.0 {
		t.Fatalf("expected fallback sampling ratio, got %f", cfg.Tracing.SamplingRatio)
	}
}
