// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.Backend.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("unexpected default base URL %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSeconds != 60 {
		t.Errorf("unexpected default timeout %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Storage.Driver != "file" {
		t.Errorf("unexpected default storage driver %q", cfg.Storage.Driver)
	}
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Backend.BaseURL != Default().Backend.BaseURL {
		t.Errorf("expected default base URL, got %q", cfg.Backend.BaseURL)
	}
}

func TestLoadFromPathParsesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[backend]
base_url = "http://example.com:9000"

[watch]
enabled = true
dir = "/tmp/inbox"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Backend.BaseURL != "http://example.com:9000" {
		t.Errorf("base URL not loaded, got %q", cfg.Backend.BaseURL)
	}
	// Unset values are backfilled from defaults.
	if cfg.Backend.TimeoutSeconds != 60 {
		t.Errorf("timeout not backfilled, got %d", cfg.Backend.TimeoutSeconds)
	}
	if !cfg.Watch.Enabled || cfg.Watch.Dir != "/tmp/inbox" {
		t.Errorf("watch section not loaded: %+v", cfg.Watch)
	}
	if len(cfg.Watch.Extensions) == 0 {
		t.Error("watch extensions not backfilled")
	}
}

func TestLoadFromPathMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is = not [valid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"bad url", func(c *Config) { c.Backend.BaseURL = "://nope" }, true},
		{"bad scheme", func(c *Config) { c.Backend.BaseURL = "ftp://host" }, true},
		{"bad driver", func(c *Config) { c.Storage.Driver = "redis" }, true},
		{"sqlite driver", func(c *Config) { c.Storage.Driver = "sqlite" }, false},
		{"dotless extension", func(c *Config) { c.Watch.Extensions = []string{"txt"} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHATBOT_BACKEND_URL", "http://override:1234")
	t.Setenv("CHATBOT_TIMEOUT_SECONDS", "5")
	t.Setenv("CHATBOT_WATCH_DIR", "/tmp/docs")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.BaseURL != "http://override:1234" {
		t.Errorf("backend URL override not applied: %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSeconds != 5 {
		t.Errorf("timeout override not applied: %d", cfg.Backend.TimeoutSeconds)
	}
	if !cfg.Watch.Enabled || cfg.Watch.Dir != "/tmp/docs" {
		t.Errorf("watch dir override should enable watching: %+v", cfg.Watch)
	}
}

func TestEnvOverrideBadTimeoutIgnored(t *testing.T) {
	t.Setenv("CHATBOT_TIMEOUT_SECONDS", "banana")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Backend.TimeoutSeconds != 60 {
		t.Errorf("invalid timeout override should be ignored, got %d", cfg.Backend.TimeoutSeconds)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Backend.BaseURL = "https://qa.internal:8443"
	cfg.UI.Markdown = false

	if err := SaveToPath(cfg, path); err != nil {
		t.Fatalf("SaveToPath: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "qa.internal:8443") {
		t.Error("saved config missing base URL")
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Backend.BaseURL != cfg.Backend.BaseURL {
		t.Errorf("round trip lost base URL: %q", loaded.Backend.BaseURL)
	}
	if loaded.UI.Markdown {
		t.Error("round trip lost markdown=false")
	}
}

func TestSaveNil(t *testing.T) {
	if err := SaveToPath(nil, filepath.Join(t.TempDir(), "c.toml")); err == nil {
		t.Fatal("expected error saving nil config")
	}
}
