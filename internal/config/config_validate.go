// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/lapor/internal/validation"
)

// Validate checks the configuration with struct tags and the checks tags cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := validateBaseURL(c.API.BaseURL); err != nil {
		return err
	}
	if !strings.Contains(c.Map.DetailRoute, "%s") {
		return fmt.Errorf("map.detail_route must contain %%s for the report id, got %q", c.Map.DetailRoute)
	}
	return nil
}

// validateBaseURL requires an http(s) URL with a host and no query or fragment.
// A path prefix such as /v1 is allowed.
func validateBaseURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("api.base_url failed to parse: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url host is required")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("api.base_url must not contain a query or fragment")
	}
	return nil
}
