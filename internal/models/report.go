// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package models

import "time"

const (
	// DefaultReporterName is used when the backend omits the reporter name.
	DefaultReporterName = "Unknown"

	// PlaceholderDamageLevel is reported for every ReportDetail. The backend does
	// not return a damage level yet, so the value is a known gap, not server data.
	PlaceholderDamageLevel = "moderate"
)

// Report is a normalized incident report as shown in lists and on the browse map.
type Report struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	EvidenceImages []string  `json:"evidenceImages"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	CreatedAt      time.Time `json:"createdAt"`
	ReporterName   string    `json:"reporterName"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (r *Report) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Location is the nested coordinate pair of a ReportDetail.
type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Reporter is the nested reporter of a ReportDetail.
type Reporter struct {
	Name string `json:"name"`
}

// ReportDetail is the detail-view shape of the same backend story record.
type ReportDetail struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	DamageLevel    string    `json:"damageLevel"`
	EvidenceImages []string  `json:"evidenceImages"`
	Location       Location  `json:"location"`
	Reporter       Reporter  `json:"reporter"`
	CreatedAt      time.Time `json:"createdAt"`
}

// EmptyReportDetail returns the detail default used on failed lookups.
func EmptyReportDetail() ReportDetail {
	return ReportDetail{EvidenceImages: []string{}}
}

// Photo is a binary evidence image attached to a new report.
type Photo struct {
	Filename    string `validate:"required"`
	ContentType string `validate:"required,image_mime"`
	Data        []byte `validate:"min=1"`
}

// NewReport is the input of a report submission. Only the first evidence image
// is transmitted; coordinates are omitted from the request when nil.
type NewReport struct {
	Name           string `validate:"required"`
	DamageLevel    string
	Description    string
	EvidenceImages []Photo  `validate:"min=1,dive"`
	Latitude       *float64 `validate:"omitempty,latitude"`
	Longitude      *float64 `validate:"omitempty,longitude"`
}

// Coordinate returns a pointer to v, for filling optional coordinate fields.
func Coordinate(v float64) *float64 {
	return &v
}
