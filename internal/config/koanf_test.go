// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.API.BaseURL != "https://story-api.dicoding.dev/v1" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 0 {
		t.Errorf("API.Timeout = %v, want 0 (no client-side timeout)", cfg.API.Timeout)
	}
	if !cfg.API.CircuitBreaker.Enabled {
		t.Error("API.CircuitBreaker.Enabled should be true by default")
	}
	if cfg.Map.CenterLat != -6.175392 || cfg.Map.CenterLon != 106.827153 {
		t.Errorf("Map center = (%v, %v), want (-6.175392, 106.827153)", cfg.Map.CenterLat, cfg.Map.CenterLon)
	}
	if cfg.Map.Zoom != 12 {
		t.Errorf("Map.Zoom = %d, want 12", cfg.Map.Zoom)
	}
	if cfg.Map.FocusZoom != 15 {
		t.Errorf("Map.FocusZoom = %d, want 15", cfg.Map.FocusZoom)
	}
	if cfg.Map.FitPadding != 50 {
		t.Errorf("Map.FitPadding = %d, want 50", cfg.Map.FitPadding)
	}
	if cfg.Map.ExcerptLength != 100 {
		t.Errorf("Map.ExcerptLength = %d, want 100", cfg.Map.ExcerptLength)
	}
	if cfg.Router.DefaultRoute != "#/" {
		t.Errorf("Router.DefaultRoute = %q, want #/", cfg.Router.DefaultRoute)
	}
	if cfg.Session.Store != "badger" {
		t.Errorf("Session.Store = %q, want badger", cfg.Session.Store)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"LAPOR_BASE_URL", "api.base_url"},
		{"LAPOR_API_TIMEOUT", "api.timeout"},
		{"LAPOR_SESSION_STORE", "session.store"},
		{"LAPOR_LOG_LEVEL", "logging.level"},
		{"LAPOR_DEFAULT_ROUTE", "router.default_route"},
		{"LAPOR_MAP_FIT_PADDING", "map.fit_padding"},
		{"LAPOR_ROUTER_QUEUE_SIZE", "router.queue_size"},
		{"LAPOR_SINGLE", "single"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestLoadFrom_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lapor.yaml")
	yaml := `api:
  base_url: https://reports.example.org/v2
  timeout: 15s
map:
  zoom: 10
session:
  store: memory
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LAPOR_MAP_ZOOM", "9")
	t.Setenv("LAPOR_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.API.BaseURL != "https://reports.example.org/v2" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("API.Timeout = %v, want 15s", cfg.API.Timeout)
	}
	if cfg.Map.Zoom != 9 {
		t.Errorf("Map.Zoom = %d, want 9 (env beats file)", cfg.Map.Zoom)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("Session.Store = %q, want memory", cfg.Session.Store)
	}
	if cfg.Map.FitPadding != 50 {
		t.Errorf("Map.FitPadding = %d, want default 50", cfg.Map.FitPadding)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadFrom(absent) should fail")
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad store", map[string]string{"LAPOR_SESSION_STORE": "redis"}, "Store"},
		{"bad latitude", map[string]string{"LAPOR_MAP_CENTER_LAT": "120"}, "CenterLat"},
		{"bad scheme", map[string]string{"LAPOR_BASE_URL": "ftp://example.com"}, "scheme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFrom("")
			if err == nil {
				t.Fatal("LoadFrom() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://story-api.dicoding.dev/v1", false},
		{"http://localhost:8080", false},
		{"https://example.com/v1?debug=1", true},
		{"https://example.com/v1#frag", true},
		{"mailto:a@b.c", true},
		{"https://", true},
	}
	for _, tt := range tests {
		err := validateBaseURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateBaseURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestValidate_DetailRoute(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Map.DetailRoute = "#/reports"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject a detail route without a placeholder")
	}
}

func TestFindConfigFile_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("map:\n  zoom: 11\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
}
