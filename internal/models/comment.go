// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package models

import "time"

// Comment is a comment on a report. The backend has no comment support yet,
// so the client never returns populated comments.
type Comment struct {
	ID           string    `json:"id"`
	Body         string    `json:"body"`
	ReporterName string    `json:"reporterName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewComment is the input of a comment submission.
type NewComment struct {
	Body string `json:"body"`
}
