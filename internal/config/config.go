// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package config

import "time"

// Config holds all client configuration.
type Config struct {
	API     APIConfig     `koanf:"api" validate:"required"`
	Session SessionConfig `koanf:"session"`
	Map     MapConfig     `koanf:"map"`
	Router  RouterConfig  `koanf:"router"`
	Logging LoggingConfig `koanf:"logging"`
}

// APIConfig configures the story backend client.
type APIConfig struct {
	// BaseURL is prefixed to every endpoint path.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// Timeout bounds each HTTP request. Zero means no client-side timeout;
	// a pending call resolves or fails on its own schedule.
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`

	// RateLimit throttles outgoing requests (requests per second). Zero disables it.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`

	// RateBurst is the limiter bucket size.
	RateBurst int `koanf:"rate_burst" validate:"gte=1"`

	// UserAgent is sent on every request.
	UserAgent string `koanf:"user_agent"`

	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig configures the breaker around the API transport.
// The breaker never retries; it only short-circuits calls while the backend is failing.
type CircuitBreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests" validate:"gte=1"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// SessionConfig configures access token persistence.
type SessionConfig struct {
	// Store is "badger" (durable) or "memory" (process lifetime only).
	Store string `koanf:"store" validate:"oneof=memory badger"`

	// Path is the badger directory.
	Path string `koanf:"path" validate:"required_if=Store badger"`
}

// MapConfig configures the map controller.
type MapConfig struct {
	CenterLat float64 `koanf:"center_lat" validate:"latitude"`
	CenterLon float64 `koanf:"center_lon" validate:"longitude"`
	Zoom      int     `koanf:"zoom" validate:"gte=0,lte=22"`

	// FocusZoom is the close zoom used for a single highlighted report.
	FocusZoom int `koanf:"focus_zoom" validate:"gte=0,lte=22"`

	// FitPadding is the pixel padding applied when fitting bounds to markers.
	FitPadding int `koanf:"fit_padding" validate:"gte=0"`

	// ExcerptLength is the number of description characters shown in a popup.
	ExcerptLength int `koanf:"excerpt_length" validate:"gte=1"`

	// DetailRoute is the detail link format; %s is replaced by the report id.
	DetailRoute string `koanf:"detail_route" validate:"required"`
	DetailLabel string `koanf:"detail_label"`

	TileURL     string `koanf:"tile_url"`
	Attribution string `koanf:"attribution"`
}

// RouterConfig configures the hash router.
type RouterConfig struct {
	DefaultRoute string `koanf:"default_route" validate:"required"`
	LoginRoute   string `koanf:"login_route" validate:"required"`
	QueueSize    int    `koanf:"queue_size" validate:"gte=1"`
}

// LoggingConfig configures internal/logging.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
