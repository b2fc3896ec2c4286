// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

// Package session holds the process-wide access token.
//
// A Store is the single source of truth for the bearer token: the login
// orchestrator is its only writer and every authenticated API call reads it
// right before building the request, so a new token takes effect on the very
// next call. Durability is delegated to a Persister:
//
//   - MemoryPersister keeps the token for the process lifetime only
//   - BadgerPersister keeps it in a BadgerDB directory so restarts preserve the session
//
// Use OpenPersister to pick a backend from configuration:
//
//	p, err := session.OpenPersister(cfg.Session)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	store := session.NewStore(p)
//	if err := store.Restore(ctx); err != nil {
//	    return err
//	}
package session
