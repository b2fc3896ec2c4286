// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package models

import "github.com/goccy/go-json"

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData is the flattened login result. Callers never see the backend's
// loginResult nesting.
type LoginData struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
}

// LoginResponse is what the API client returns from Login. Raw keeps the
// undecoded payload so token lookups can tolerate other response shapes.
type LoginResponse struct {
	Result[LoginData]
	Raw json.RawMessage `json:"-"`
}
