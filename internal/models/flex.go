// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package models

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// FlexString decodes a JSON string, number, or boolean as text. Null, objects and
// arrays decode to the empty string instead of failing.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			*s = ""
			return nil
		}
		*s = FlexString(v)
	case data[0] == '{', data[0] == '[':
		*s = ""
	default:
		*s = FlexString(data)
	}
	return nil
}

// String returns the decoded text.
func (s FlexString) String() string {
	return string(s)
}

// FlexFloat decodes a JSON number or finite numeric string. Anything else,
// including null, leaves it unset.
type FlexFloat struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	text := string(data)
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
		text = v
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Value, f.Valid = v, true
	return nil
}

// Ptr returns a pointer to the value, or nil when unset.
func (f FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// FlexBool decodes an application-level flag by truthiness: booleans as is,
// non-zero numbers as true, strings via strconv.ParseBool or, failing that, as
// true when non-empty. Null, objects and arrays decode to false.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*b = false
		return nil
	}
	*b = FlexBool(truthy(v))
	return nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		if parsed, err := strconv.ParseBool(t); err == nil {
			return parsed
		}
		return t != ""
	default:
		return false
	}
}
