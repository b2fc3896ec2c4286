// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package models

// Result is the normalized outcome of an API client operation.
//
// Every operation returns a Result, including on transport failure, so callers
// only ever check OK. Data always holds a value of the documented type; on
// failure it is that type's empty default (an empty slice, never nil, for lists).
type Result[T any] struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// Success builds a successful Result.
func Success[T any](message string, data T) Result[T] {
	return Result[T]{OK: true, Message: message, Data: data}
}

// Failure builds a failed Result carrying the operation's empty default data.
func Failure[T any](message string, data T) Result[T] {
	return Result[T]{OK: false, Message: message, Data: data}
}

// Envelope is a decoded JSON object passed through from the backend unchanged.
type Envelope map[string]any

// Message returns the payload's "message" field, or "" when absent or not a string.
func (e Envelope) Message() string {
	return e.String("message")
}

// Error reports the payload's application-level "error" flag.
func (e Envelope) Error() bool {
	if e == nil {
		return false
	}
	return truthy(e["error"])
}

// String returns the string field key, or "" when absent or not a string.
func (e Envelope) String(key string) string {
	if e == nil {
		return ""
	}
	v, _ := e[key].(string)
	return v
}
