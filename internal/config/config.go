// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// chat client.
//
// Configuration is a TOML file with built-in defaults and environment
// variable overrides:
//   - ~/.ai-chatbot/config.toml
//   - Built-in defaults
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/subodhdevpatel/ai-chatbot/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete client configuration.
type Config struct {
	// Backend connection
	Backend BackendConfig `toml:"backend"`

	// Conversation persistence
	Storage StorageConfig `toml:"storage"`

	// Watch-folder auto upload
	Watch WatchConfig `toml:"watch"`

	// UI options
	UI UIConfig `toml:"ui"`
}

// BackendConfig configures the QA backend connection.
type BackendConfig struct {
	// BaseURL is the backend base address, fixed at configuration time.
	BaseURL string `toml:"base_url"`

	// TimeoutSeconds bounds each HTTP request. Answer generation can be
	// slow, so the default is generous.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// StorageConfig configures conversation persistence.
type StorageConfig struct {
	// Driver selects the persistence backend: "file" or "sqlite".
	Driver string `toml:"driver"`

	// Dir is the directory for the file driver.
	Dir string `toml:"dir"`

	// DatabasePath is the database file for the sqlite driver.
	DatabasePath string `toml:"database_path"`
}

// WatchConfig configures the local watch folder.
type WatchConfig struct {
	// Enabled turns the watcher on.
	Enabled bool `toml:"enabled"`

	// Dir is the local directory to watch for new documents.
	Dir string `toml:"dir"`

	// Extensions lists uploadable file extensions (with dot).
	Extensions []string `toml:"extensions"`

	// UploadsPerMinute rate-limits watcher-triggered uploads.
	UploadsPerMinute int `toml:"uploads_per_minute"`
}

// UIConfig configures presentation options.
type UIConfig struct {
	// ShowSources toggles citation footers on AI answers.
	ShowSources bool `toml:"show_sources"`

	// Markdown renders AI answers through the markdown renderer.
	Markdown bool `toml:"markdown"`
}

// Timeout returns the backend request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".ai-chatbot")
	return &Config{
		Backend: BackendConfig{
			BaseURL:        "http://127.0.0.1:8000",
			TimeoutSeconds: 60,
		},
		Storage: StorageConfig{
			Driver:       "file",
			Dir:          filepath.Join(base, "chats"),
			DatabasePath: filepath.Join(base, "chats.db"),
		},
		Watch: WatchConfig{
			Enabled:          false,
			Dir:              filepath.Join(base, "inbox"),
			Extensions:       []string{".txt", ".pdf", ".md"},
			UploadsPerMinute: 12,
		},
		UI: UIConfig{
			ShowSources: true,
			Markdown:    true,
		},
	}
}

// ConfigDir returns the configuration directory (~/.ai-chatbot).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ai-chatbot"), nil
}

// ConfigPath returns the TOML config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file if present, fills defaults for anything unset,
// applies environment overrides, and validates. A missing file is not an
// error; a malformed one is.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from an explicit file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.fillDefaults()
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillDefaults backfills zero values so a sparse config file still yields a
// complete configuration.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = def.Backend.BaseURL
	}
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = def.Backend.TimeoutSeconds
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = def.Storage.Driver
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = def.Storage.Dir
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = def.Storage.DatabasePath
	}
	if c.Watch.Dir == "" {
		c.Watch.Dir = def.Watch.Dir
	}
	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = append([]string(nil), def.Watch.Extensions...)
	}
	if c.Watch.UploadsPerMinute <= 0 {
		c.Watch.UploadsPerMinute = def.Watch.UploadsPerMinute
	}
}

// ApplyEnvOverrides applies CHATBOT_* environment variables on top of the
// file configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CHATBOT_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("CHATBOT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Backend.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("CHATBOT_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("CHATBOT_STORAGE_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("CHATBOT_WATCH_DIR"); v != "" {
		c.Watch.Dir = v
		c.Watch.Enabled = true
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not a valid URL", c.Backend.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url scheme must be http or https, got %q", u.Scheme)
	}

	switch c.Storage.Driver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("storage.driver must be \"file\" or \"sqlite\", got %q", c.Storage.Driver)
	}

	for _, ext := range c.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("watch.extensions entry %q must start with a dot", ext)
		}
	}

	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default path atomically.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration to an explicit path atomically.
func SaveToPath(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return util.AtomicWriteFile(path, []byte(sb.String()), 0644)
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Global returns the process-wide configuration, loading it on first use.
// Load failures fall back to defaults so the TUI can always start.
func Global() *Config {
	globalMu.RLock()
	if globalCfg != nil {
		defer globalMu.RUnlock()
		return globalCfg
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalCfg == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalCfg = cfg
	}
	return globalCfg
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// ResetGlobalForTesting clears the cached global config.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = nil
}
