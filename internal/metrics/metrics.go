// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// API request outcomes.
const (
	OutcomeOK       = "ok"       // response decoded, payload reported success
	OutcomeFailed   = "failed"   // response decoded, payload or status reported failure
	OutcomeError    = "error"    // transport or decode error
	OutcomeRejected = "rejected" // short-circuited locally (breaker open, validation)
)

var (
	// API Client Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapor_api_requests_total",
			Help: "Total number of story backend requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lapor_api_request_duration_seconds",
			Help:    "Duration of story backend requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ReportDefaultsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapor_report_defaults_applied_total",
			Help: "Total number of fallback values applied while normalizing reports",
		},
		[]string{"field"}, // reporter, created_at, photo, element
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Map Metrics
	MapMarkers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lapor_map_markers",
			Help: "Markers currently placed on the map by mode",
		},
		[]string{"mode"}, // single, collection
	)

	// Login Metrics
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapor_login_attempts_total",
			Help: "Total number of login submissions by outcome",
		},
		[]string{"outcome"}, // success, failure, no_token, busy
	)
)

// RecordAPIRequest records one story backend call.
func RecordAPIRequest(operation, outcome string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(operation, outcome).Inc()
	APIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordReportDefault records a fallback applied during normalization.
func RecordReportDefault(field string) {
	ReportDefaultsApplied.WithLabelValues(field).Inc()
}

// SetMapMarkers publishes the marker count for the active mode and zeroes the other.
func SetMapMarkers(mode string, count int) {
	for _, m := range []string{"single", "collection"} {
		if m == mode {
			MapMarkers.WithLabelValues(m).Set(float64(count))
		} else {
			MapMarkers.WithLabelValues(m).Set(0)
		}
	}
}

// RecordLoginAttempt records a login submission outcome.
func RecordLoginAttempt(outcome string) {
	LoginAttempts.WithLabelValues(outcome).Inc()
}
