// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package auth

import (
	"github.com/tidwall/gjson"

	"github.com/tomtom215/lapor/internal/models"
)

// tokenStrategy locates an access token in one login response shape.
type tokenStrategy struct {
	name    string
	extract func(resp *models.LoginResponse) string
}

// tokenStrategies are tried in order; the first non-empty token wins.
var tokenStrategies = []tokenStrategy{
	{
		name:    "data.accessToken",
		extract: func(resp *models.LoginResponse) string { return resp.Data.AccessToken },
	},
	{name: "accessToken", extract: rawString("accessToken")},
	{name: "token", extract: rawString("token")},
}

// rawString reads a top-level string field from the undecoded payload.
func rawString(path string) func(resp *models.LoginResponse) string {
	return func(resp *models.LoginResponse) string {
		if len(resp.Raw) == 0 {
			return ""
		}
		res := gjson.GetBytes(resp.Raw, path)
		if res.Type != gjson.String {
			return ""
		}
		return res.Str
	}
}

// extractToken returns the token and the name of the strategy that found it.
func extractToken(resp *models.LoginResponse) (token, source string) {
	for _, s := range tokenStrategies {
		if tok := s.extract(resp); tok != "" {
			return tok, s.name
		}
	}
	return "", ""
}
