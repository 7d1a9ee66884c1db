// Package config provides configuration management for the Metal Archives
// client.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Constructing the configured cache store
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// One request per second against www.metal-archives.com
//	// SQLite page cache in the system temp directory, 5 minute TTL
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.RequestIntervalSeconds = 2.0
//	err := settings.Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Site origin, user agent and request throttling
//   - Page cache backend, location and lifetime
//   - Prefetch concurrency
//   - Artwork download, resizing and format conversion
//   - Output format for the command-line client
package config
