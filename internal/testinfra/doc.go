// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

// Package testinfra provides a fake story backend for tests.
//
// StoryBackend is an httptest server routed with chi that speaks the same
// JSON and multipart contract as the real story API. It captures every
// request so tests can assert on headers, bodies, and call counts (for
// example, that an operation made no network call at all).
//
//	func TestListReports(t *testing.T) {
//	    backend := testinfra.NewStoryBackend(t)
//	    backend.SetStories(testinfra.Story("s-1", "Banjir", -6.2, 106.8))
//
//	    client := api.NewClient(&config.APIConfig{BaseURL: backend.URL()}, tokens)
//	    res := client.ListReports(ctx)
//	    // ...
//	}
//
// Any route can be replaced with Handle to simulate malformed payloads or
// server failures.
package testinfra
