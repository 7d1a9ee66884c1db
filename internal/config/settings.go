package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/azagthoth/metallum/internal/cache"
)

// Settings holds all configuration options.
type Settings struct {
	// Site settings
	BaseURL                string  `json:"base_url"`
	UserAgent              string  `json:"user_agent"`
	RequestIntervalSeconds float64 `json:"request_interval_seconds"`

	// Cache settings
	CacheBackend    string `json:"cache_backend"` // sqlite, memory
	CachePath       string `json:"cache_path"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds"`

	// Prefetch settings
	PrefetchConcurrency int `json:"prefetch_concurrency"`

	// Artwork settings
	ArtworkDir          string `json:"artwork_dir"`
	ArtworkResize       bool   `json:"artwork_resize"`
	ArtworkMaxSize      int    `json:"artwork_max_size"`
	ConvertArtworkToJPG bool   `json:"convert_artwork_to_jpg"`

	// Output settings
	OutputFormat string `json:"output_format"` // text, json
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		BaseURL:                "https://www.metal-archives.com",
		UserAgent:              "",
		RequestIntervalSeconds: 1.0,

		CacheBackend:    "sqlite",
		CachePath:       cache.DefaultPath(),
		CacheTTLSeconds: int(cache.DefaultTTL / time.Second),

		PrefetchConcurrency: 3,

		ArtworkDir:          filepath.Join(homeDir, "Music", "MetalArchives", "artwork"),
		ArtworkResize:       true,
		ArtworkMaxSize:      1000,
		ConvertArtworkToJPG: true,

		OutputFormat: "text",
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// RequestInterval returns the configured minimum delay between requests.
func (s *Settings) RequestInterval() time.Duration {
	return time.Duration(s.RequestIntervalSeconds * float64(time.Second))
}

// CacheTTL returns the configured page cache lifetime.
func (s *Settings) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// OpenCache creates the configured cache store.
func (s *Settings) OpenCache() (cache.Store, error) {
	if s.CacheBackend == "memory" {
		return cache.NewMemory(s.CacheTTL()), nil
	}
	return cache.OpenSQLite(s.CachePath, s.CacheTTL())
}
