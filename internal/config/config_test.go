package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WordLength != 5 || cfg.Attempts != 6 {
		t.Errorf("Expected 5x6 defaults, got %dx%d", cfg.WordLength, cfg.Attempts)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.LogFormat != "console" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WORD_LENGTH", "4")
	t.Setenv("ATTEMPTS", "3")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("STORE_DSN", "data/games.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WordLength != 4 || cfg.Attempts != 3 || cfg.TokenTTL != 90*time.Minute || cfg.StoreDSN != "data/games.db" {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("ATTEMPTS", "many")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("Expected parse env error, got %v", err)
	}

	t.Setenv("ATTEMPTS", "0")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ATTEMPTS") {
		t.Errorf("Expected ATTEMPTS error, got %v", err)
	}
}
