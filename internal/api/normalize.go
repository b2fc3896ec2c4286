// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package api

import (
	"strings"
	"time"

	"github.com/tomtom215/lapor/internal/models"
)

// Fallback markers returned by normalizeStory, also used as metric labels.
const (
	defaultedPhoto     = "photo"
	defaultedCreatedAt = "created_at"
	defaultedReporter  = "reporter"
)

// NormalizeReport converts a raw story into a Report. Every field is present
// in the result; now is used when createdAt is missing or unparsable.
func NormalizeReport(raw *models.StoryPayload, now time.Time) models.Report {
	r, _ := normalizeStory(raw, now)
	return r
}

// NormalizeReportDetail converts a raw story into a ReportDetail. DamageLevel is
// always models.PlaceholderDamageLevel because the backend does not provide one.
func NormalizeReportDetail(raw *models.StoryPayload, now time.Time) models.ReportDetail {
	r, _ := normalizeStory(raw, now)
	return detailFromReport(&r)
}

// normalizeStory is the single normalization path for both entity shapes. It
// also reports which fallbacks were applied.
func normalizeStory(raw *models.StoryPayload, now time.Time) (models.Report, []string) {
	var defaulted []string

	images := []string{}
	if url := strings.TrimSpace(raw.PhotoURL.String()); url != "" {
		images = append(images, url)
	} else {
		defaulted = append(defaulted, defaultedPhoto)
	}

	createdAt, ok := parseTimestamp(raw.CreatedAt.String())
	if !ok {
		createdAt = now
		defaulted = append(defaulted, defaultedCreatedAt)
	}

	reporter := raw.Name.String()
	if reporter == "" {
		reporter = models.DefaultReporterName
		defaulted = append(defaulted, defaultedReporter)
	}

	return models.Report{
		ID:             raw.ID.String(),
		Title:          raw.Name.String(),
		Description:    raw.Description.String(),
		EvidenceImages: images,
		Latitude:       raw.Lat.Ptr(),
		Longitude:      raw.Lon.Ptr(),
		CreatedAt:      createdAt,
		ReporterName:   reporter,
	}, defaulted
}

func detailFromReport(r *models.Report) models.ReportDetail {
	return models.ReportDetail{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		DamageLevel:    models.PlaceholderDamageLevel,
		EvidenceImages: r.EvidenceImages,
		Location:       models.Location{Latitude: r.Latitude, Longitude: r.Longitude},
		Reporter:       models.Reporter{Name: r.ReporterName},
		CreatedAt:      r.CreatedAt,
	}
}

// timestampLayouts are tried in order when parsing createdAt.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
