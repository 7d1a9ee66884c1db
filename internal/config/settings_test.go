package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.BaseURL != "https://www.metal-archives.com" {
		t.Errorf("BaseURL = %q", settings.BaseURL)
	}
	if settings.RequestInterval() != time.Second {
		t.Errorf("RequestInterval() = %v, want 1s", settings.RequestInterval())
	}
	if settings.CacheTTL() != 5*time.Minute {
		t.Errorf("CacheTTL() = %v, want 5m", settings.CacheTTL())
	}
}

func TestSettings_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	settings := DefaultSettings()
	settings.RequestIntervalSeconds = 2.5
	settings.CacheBackend = "memory"
	settings.PrefetchConcurrency = 8

	if err := settings.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.RequestIntervalSeconds != 2.5 {
		t.Errorf("RequestIntervalSeconds = %v", loaded.RequestIntervalSeconds)
	}
	if loaded.CacheBackend != "memory" {
		t.Errorf("CacheBackend = %q", loaded.CacheBackend)
	}
	if loaded.PrefetchConcurrency != 8 {
		t.Errorf("PrefetchConcurrency = %d", loaded.PrefetchConcurrency)
	}
}
