// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is stripped from environment variable names before mapping.
const envPrefix = "LAPOR_"

// DefaultConfigPaths lists config file locations in priority order.
func DefaultConfigPaths() []string {
	paths := []string{"lapor.yaml", "config.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "lapor", "config.yaml"))
	}
	return paths
}

// defaultConfig returns a Config with every default applied.
func defaultConfig() *Config {
	sessionPath := ".lapor/session"
	if home, err := os.UserHomeDir(); err == nil {
		sessionPath = filepath.Join(home, ".lapor", "session")
	}

	return &Config{
		API: APIConfig{
			BaseURL:   "https://story-api.dicoding.dev/v1",
			Timeout:   0,
			RateLimit: 0,
			RateBurst: 1,
			UserAgent: "lapor-client",
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:      true,
				MaxRequests:  1,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  5,
				FailureRatio: 0.6,
			},
		},
		Session: SessionConfig{
			Store: "badger",
			Path:  sessionPath,
		},
		Map: MapConfig{
			CenterLat:     -6.175392,
			CenterLon:     106.827153,
			Zoom:          12,
			FocusZoom:     15,
			FitPadding:    50,
			ExcerptLength: 100,
			DetailRoute:   "#/reports/%s",
			DetailLabel:   "Lihat Detail",
			TileURL:       "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution:   "&copy; OpenStreetMap contributors",
		},
		Router: RouterConfig{
			DefaultRoute: "#/",
			LoginRoute:   "#/login",
			QueueSize:    64,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from defaults, the first config file found, and the environment.
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom loads configuration using configPath as the file layer. An empty
// path skips the file layer.
func LoadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps shortened variable names (prefix already stripped, lowercased)
// to koanf paths.
var envMappings = map[string]string{
	"base_url":         "api.base_url",
	"api_timeout":      "api.timeout",
	"rate_limit":       "api.rate_limit",
	"rate_burst":       "api.rate_burst",
	"user_agent":       "api.user_agent",
	"breaker_enabled":  "api.circuit_breaker.enabled",
	"session_store":    "session.store",
	"session_path":     "session.path",
	"map_center_lat":   "map.center_lat",
	"map_center_lon":   "map.center_lon",
	"map_zoom":         "map.zoom",
	"map_focus_zoom":   "map.focus_zoom",
	"map_detail_label": "map.detail_label",
	"default_route":    "router.default_route",
	"login_route":      "router.login_route",
	"log_level":        "logging.level",
	"log_format":       "logging.format",
	"log_caller":       "logging.caller",
}

// envTransformFunc maps LAPOR_* variable names to koanf paths.
//
// Examples:
//   - LAPOR_BASE_URL -> api.base_url
//   - LAPOR_LOG_LEVEL -> logging.level
//   - LAPOR_MAP_FIT_PADDING -> map.fit_padding (generic section_key form)
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}
