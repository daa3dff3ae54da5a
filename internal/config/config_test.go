/* Copyright (c) 2025 David Bulkow */

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v", cfg.ConnectTimeout)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.SlotMinutes != 30 || cfg.StartHour != 9 || cfg.EndHour != 22 {
		t.Errorf("slot geometry = %d/%d/%d", cfg.SlotMinutes, cfg.StartHour, cfg.EndHour)
	}
	if cfg.IsProduction() {
		t.Error("default env should not be production")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CLASSROOMS_BASE_URL", "http://store.example.edu")
	t.Setenv("CLASSROOMS_REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "http://store.example.edu" {
		t.Errorf("BaseURL = %q, want env override", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
}
