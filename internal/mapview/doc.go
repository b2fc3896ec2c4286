// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

/*
Package mapview owns the single interactive map and the markers drawn on it.

The rendering library is abstracted behind Engine, Map and Marker. Controller
layers a small state machine on top:

  - Empty: no markers
  - Single: exactly one draggable marker (authoring a new report)
  - Collection: zero or more static markers with popups (browsing reports)

Entering one mode removes every marker left by the other, and callers never
see Marker values, so the modes cannot be mixed.

The map itself is acquired once. Later Acquire calls return the same Map and
ignore their options.

	ctrl := mapview.NewController(engine, cfg.Map)
	m, err := ctrl.Acquire("map", nil)
	if err != nil {
	    return err
	}
	placed := ctrl.RenderReportMarkers(m, reports)

MemoryEngine is a headless Engine that records every call. Tests and the
CLI use it.
*/
package mapview
