// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

// Package router provides the hash-route navigation primitive and the
// "content changed, re-render" signal used after login and logout.
//
// HashRouter keeps the current route, publishes route and refresh events on
// an in-process Watermill gochannel, and runs deferred work on a task queue:
//
//	r := router.New(cfg.Router)
//	defer r.Close()
//
//	events, err := r.Subscribe(ctx)
//	if err != nil {
//	    return err
//	}
//	go func() { _ = r.Serve(ctx) }()
//
//	r.Navigate("#/")
//	r.Defer(r.Refresh) // runs on the next tick of Serve
//
// Drain runs queued tasks on the calling goroutine, for short-lived programs
// that do not run Serve.
package router
