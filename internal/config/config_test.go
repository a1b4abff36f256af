package config

import (
	"errors"
	"testing"
)

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("BACKEND_BASE_URL", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing required env")
	}
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "timviec")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("BACKEND_BASE_URL", "http://backend:5000/api")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "bogus")
	t.Setenv("SNAPSHOT_REFRESH_MINUTES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Backend.TimeoutSeconds != 15 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Snapshot.RefreshMinutes != 5 {
		t.Fatalf("override not applied, got %d", cfg.Snapshot.RefreshMinutes)
	}
	if cfg.Redis.TTLSeconds != 600 {
		t.Fatalf("redis ttl default wrong: %d", cfg.Redis.TTLSeconds)
	}
}
