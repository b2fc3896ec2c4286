// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

// Package logging provides centralized zerolog-based structured logging for Lapor.
//
// Every component of the client (API client, map controller, login orchestrator,
// session store, router) logs through this package so output is uniform whether
// the client runs as a CLI or is embedded in another program.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	logging.Info().Str("report_id", id).Msg("Report loaded")
//	logging.Warn().Err(err).Str("operation", "list_reports").Msg("Request failed")
//
// # Component Loggers
//
//	apiLog := logging.WithComponent("api")
//	apiLog.Debug().Int("count", n).Msg("Reports normalized")
//
// # Context-Aware Logging
//
// Each API operation runs with a correlation ID so all log lines of a single
// user action can be grouped:
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Info().Msg("Submitting report")
//
// # Credentials
//
// Access tokens must never be logged verbatim. Use RedactToken for any field
// that may carry a bearer token, and SecurityLogger for login/logout events.
//
// # Environment Variables
//
//	LAPOR_LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LAPOR_LOG_FORMAT  - json, console (default: json)
//	LAPOR_LOG_CALLER  - true, false (default: false)
package logging
