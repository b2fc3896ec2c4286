// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

/*
Package metrics provides Prometheus instrumentation for the Lapor client.

All collectors are registered on the default registry through promauto, so a
host program embedding the client only needs to expose promhttp.Handler().

# Metrics

API client:

	lapor_api_requests_total{operation,outcome}         outcome: ok, failed, error, rejected
	lapor_api_request_duration_seconds{operation}
	lapor_report_defaults_applied_total{field}          normalization fallbacks (reporter, created_at, photo)

Circuit breaker:

	circuit_breaker_state{name}                         0=closed, 1=half-open, 2=open
	circuit_breaker_requests_total{name,result}
	circuit_breaker_state_transitions_total{name,from_state,to_state}

Map controller:

	lapor_map_markers{mode}                             mode: single, collection

Login orchestrator:

	lapor_login_attempts_total{outcome}                 outcome: success, failure, no_token, busy

# Example

	metrics.RecordAPIRequest("list_reports", metrics.OutcomeOK, time.Since(start))
*/
package metrics
