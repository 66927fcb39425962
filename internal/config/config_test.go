package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Server.Name != DefaultServerName {
		t.Errorf("name = %q, want %q", cfg.Server.Name, DefaultServerName)
	}
	if cfg.Server.Version != DefaultServerVersion {
		t.Errorf("version = %q, want %q", cfg.Server.Version, DefaultServerVersion)
	}
	if cfg.Settings == nil {
		t.Fatal("expected settings to be populated")
	}
	if cfg.Settings.MaxHistory != DefaultMaxHistory {
		t.Errorf("maxHistory = %d, want %d", cfg.Settings.MaxHistory, DefaultMaxHistory)
	}
	if cfg.Settings.ContextWindow != DefaultContextWindow {
		t.Errorf("contextWindow = %d, want %d", cfg.Settings.ContextWindow, DefaultContextWindow)
	}
	if !cfg.Settings.EnableAnalytics {
		t.Error("expected analytics enabled by default")
	}
	if cfg.Settings.LogLevel != "info" {
		t.Errorf("logLevel = %q, want info", cfg.Settings.LogLevel)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var notFound *ConfigNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ConfigNotFoundError, got %T: %v", err, err)
	}
	if notFound.Path != path {
		t.Errorf("error path = %q, want %q", notFound.Path, path)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}

	var invalid *InvalidConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConfigError, got %T: %v", err, err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := NewConfig()
	cfg.Settings.MaxHistory = 25
	cfg.Settings.EnableAnalytics = false
	cfg.Settings.AnalyticsDBPath = "/tmp/analytics.db"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if loaded.Settings.MaxHistory != 25 {
		t.Errorf("maxHistory = %d, want 25", loaded.Settings.MaxHistory)
	}
	if loaded.Settings.EnableAnalytics {
		t.Error("expected analytics disabled after round trip")
	}
	if loaded.Settings.AnalyticsDBPath != "/tmp/analytics.db" {
		t.Errorf("analyticsDBPath = %q", loaded.Settings.AnalyticsDBPath)
	}
	if loaded.Server.Name != DefaultServerName {
		t.Errorf("name = %q, want %q", loaded.Server.Name, DefaultServerName)
	}
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	partial := `{"server": {"name": "custom-scout"}}`
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Server.Name != "custom-scout" {
		t.Errorf("name = %q, want custom-scout", cfg.Server.Name)
	}
	if cfg.Server.Version != DefaultServerVersion {
		t.Errorf("version = %q, want default", cfg.Server.Version)
	}
	if cfg.Settings == nil || cfg.Settings.MaxHistory != DefaultMaxHistory {
		t.Errorf("expected default settings, got %+v", cfg.Settings)
	}
}

func TestConfigNotFoundErrorMessage(t *testing.T) {
	err := &ConfigNotFoundError{Path: "/some/path.json", Hint: "hint text"}
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty error message")
	}
	if !strings.Contains(msg, "/some/path.json") {
		t.Errorf("message missing path: %q", msg)
	}
}
