// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

// Package auth implements the login/session orchestrator.
//
// An Orchestrator drives one login attempt at a time through
// Idle → Submitting → {Success, Failure} → Idle:
//
//   - Submitting calls the API client's Login.
//   - A transport or application failure is handed to the View and stops.
//   - On success the access token is located by an ordered list of
//     extraction strategies (data.accessToken, then top-level accessToken,
//     then top-level token). A success without a token is a failure.
//   - The token is persisted through the session store before anything
//     else observes the login.
//   - The router is then told to re-render: when the current route differs
//     from the default route it navigates there and defers the refresh to the
//     next tick, otherwise it refreshes immediately.
//   - The View's loading indicator is hidden on every exit path.
//
// Usage:
//
//	orch := auth.NewOrchestrator(client, store, r, view, cfg.Router)
//	if err := orch.Login(ctx, email, password); err != nil {
//	    // view.LoginFailed has already been called
//	}
package auth
