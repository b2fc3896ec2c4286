// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/lapor/internal/config"
	"github.com/tomtom215/lapor/internal/testinfra"
)

func TestBreaker_OpensAndRejectsWithoutSending(t *testing.T) {
	t.Parallel()

	backend := testinfra.NewStoryBackend(t)
	backend.Handle(http.MethodGet, "/stories", func(w http.ResponseWriter, _ *http.Request) {
		testinfra.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"error": true, "message": "maintenance"})
	})

	cfg := &config.APIConfig{
		BaseURL:   backend.URL(),
		RateBurst: 1,
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:      true,
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			MinRequests:  2,
			FailureRatio: 0.5,
		},
	}
	client := NewClient(cfg, &staticToken{token: testinfra.DefaultToken})
	ctx := context.Background()

	// 5xx responses still reach the caller while the breaker is closed.
	for i := 0; i < 2; i++ {
		res := client.ListReports(ctx)
		if res.OK || res.Message != "maintenance" {
			t.Fatalf("attempt %d = %+v", i, res)
		}
	}
	if got := client.breaker.state(); got != "open" {
		t.Fatalf("breaker state = %s, want open", got)
	}

	calls := backend.Calls()
	res := client.ListReports(ctx)
	if res.OK || !strings.Contains(res.Message, "circuit breaker open") {
		t.Errorf("rejected result = %+v", res)
	}
	if res.Data == nil {
		t.Error("rejected Data is nil")
	}
	if backend.Calls() != calls {
		t.Error("request sent while breaker open")
	}
}

func TestBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	backend := testinfra.NewStoryBackend(t)
	cfg := &config.APIConfig{
		BaseURL:   backend.URL(),
		RateBurst: 1,
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: true, MaxRequests: 1, Timeout: time.Minute, MinRequests: 1, FailureRatio: 0.1,
		},
	}
	client := NewClient(cfg, &staticToken{}) // no token: every call is a 401

	for i := 0; i < 3; i++ {
		client.ListReports(context.Background())
	}
	if got := client.breaker.state(); got != "closed" {
		t.Errorf("breaker state = %s, want closed after 4xx responses", got)
	}
	if backend.Calls() != 3 {
		t.Errorf("calls = %d, want 3", backend.Calls())
	}
}

func TestRateLimiter_Configured(t *testing.T) {
	t.Parallel()

	client := NewClient(&config.APIConfig{BaseURL: "http://localhost", RateLimit: 5, RateBurst: 0}, nil)
	if client.limiter == nil {
		t.Fatal("limiter not configured")
	}
	if client.limiter.Burst() != 1 {
		t.Errorf("burst = %d, want 1", client.limiter.Burst())
	}

	unlimited := NewClient(&config.APIConfig{BaseURL: "http://localhost"}, nil)
	if unlimited.limiter != nil || unlimited.breaker != nil {
		t.Error("zero config should disable limiter and breaker")
	}
}
