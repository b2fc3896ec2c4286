// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityEvent is an authentication-related event written by SecurityLogger.
type SecurityEvent struct {
	// Event is the event name: "login", "logout", "token_stored", "token_restored".
	Event string
	// Email is the account email (masked before writing).
	Email string
	// UserID is the backend user id, if known.
	UserID string
	// Token is the access token involved (redacted before writing).
	Token string
	// Success indicates whether the operation succeeded.
	Success bool
	// Reason is the failure reason (sanitized before writing).
	Reason string
}

// SecurityLogger logs authentication events with credentials masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on top of the global logger.
func NewSecurityLogger() *SecurityLogger {
	return newSecurityLogger(Logger())
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newSecurityLogger(l zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: l.With().Str("component", "auth").Logger()}
}

// LogEvent writes event with every sensitive field sanitized.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info()
	if !event.Success {
		e = l.logger.Warn()
	}
	e = e.Str("event", event.Event)

	if event.Success {
		e = e.Str("status", "success")
	} else {
		e = e.Str("status", "failed")
	}
	if event.Email != "" {
		e = e.Str("email", SanitizeEmail(event.Email))
	}
	if event.UserID != "" {
		e = e.Str("user_id", event.UserID)
	}
	if event.Token != "" {
		e = e.Str("token", RedactToken(event.Token))
	}
	if event.Reason != "" && !event.Success {
		e = e.Str("reason", SanitizeError(event.Reason))
	}
	e.Msg("")
}

// LogLogin logs the outcome of a login attempt.
func (l *SecurityLogger) LogLogin(email, userID, token string, success bool, reason string) {
	l.LogEvent(&SecurityEvent{
		Event:   "login",
		Email:   email,
		UserID:  userID,
		Token:   token,
		Success: success,
		Reason:  reason,
	})
}

// LogLogout logs a session being cleared.
func (l *SecurityLogger) LogLogout(token string) {
	l.LogEvent(&SecurityEvent{Event: "logout", Token: token, Success: true})
}

// RedactToken keeps the first 4 characters of a token and masks the rest.
// Tokens of 8 characters or fewer are fully masked.
//
//	RedactToken("eyJhbGciOiJIUzI1NiJ9.abc") // "eyJh***"
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "***"
}

// SanitizeEmail masks the local part of an email address.
//
//	SanitizeEmail("budi@example.com") // "bu***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

// SanitizeError hides error text that may echo credentials and truncates long messages.
func SanitizeError(msg string) string {
	lower := strings.ToLower(msg)
	for _, pattern := range []string{"password", "secret", "bearer", "authorization"} {
		if strings.Contains(lower, pattern) {
			return "authentication error"
		}
	}
	if len(msg) > 200 {
		return msg[:200] + "..."
	}
	return msg
}
