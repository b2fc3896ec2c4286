// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

/*
Package models defines the data structures shared by the Lapor client.

The package has three groups of types:

 1. Domain entities handed to views and the map controller:
    - Report: flat report used by list views and browse-mode markers
    - ReportDetail: nested report used by the detail view
    - LoginData: flattened login payload (access token, user id, name)

 2. Result wrappers returned by every API client operation:
    - Result[T]: the normalized { ok, message, data } shape
    - Envelope: a decoded pass-through JSON payload

 3. Wire types describing what the story backend sends (StoryPayload,
    ListStoriesPayload, LoginPayload). They use tolerant field types
    (FlexString, FlexFloat) so a partially malformed record never fails
    decoding of the whole response.

Domain entities never carry raw server nulls: every field is either set
or holds its documented default. The only optional fields are report
coordinates, which are nil when the server omitted them.

Usage:

	res := client.ListReports(ctx)
	if !res.OK {
	    view.ShowError(res.Message)
	    return
	}
	for _, r := range res.Data {
	    if r.HasCoordinates() {
	        // ...
	    }
	}
*/
package models
