// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package mapview

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/lapor/internal/models"
)

// PopupBuilder renders the browsing-mode popup of a report.
type PopupBuilder struct {
	ExcerptLength int
	DetailRoute   string // format with one %s for the report id
	DetailLabel   string
}

// Build returns the popup HTML for r. Text is HTML-escaped and the description
// is cut to ExcerptLength characters followed by "...".
func (p PopupBuilder) Build(r *models.Report) string {
	var b strings.Builder
	b.WriteString("<strong>")
	b.WriteString(html.EscapeString(r.Title))
	b.WriteString("</strong><br>")
	b.WriteString(html.EscapeString(excerpt(r.Description, p.ExcerptLength)))
	b.WriteString("...<br><br>")
	fmt.Fprintf(&b, `<a href="%s">%s</a>`,
		html.EscapeString(fmt.Sprintf(p.DetailRoute, r.ID)),
		html.EscapeString(p.DetailLabel))
	return b.String()
}

// excerpt returns the first n characters of s.
func excerpt(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
