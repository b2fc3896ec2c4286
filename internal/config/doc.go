// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

/*
Package config provides layered configuration for the Lapor client.

Configuration is loaded with Koanf v2 from three layers, highest priority last:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./lapor.yaml, ./config.yaml,
    $XDG_CONFIG_HOME/lapor/config.yaml
 3. Environment variables

# Environment Variables

	LAPOR_BASE_URL            api.base_url (default: https://story-api.dicoding.dev/v1)
	LAPOR_API_TIMEOUT         api.timeout (default: 0, no client-side timeout)
	LAPOR_RATE_LIMIT          api.rate_limit requests/second (default: 0, unlimited)
	LAPOR_RATE_BURST          api.rate_burst (default: 1)
	LAPOR_BREAKER_ENABLED     api.circuit_breaker.enabled (default: true)
	LAPOR_SESSION_STORE       session.store: memory or badger (default: badger)
	LAPOR_SESSION_PATH        session.path (default: $HOME/.lapor/session)
	LAPOR_MAP_CENTER_LAT      map.center_lat (default: -6.175392)
	LAPOR_MAP_CENTER_LON      map.center_lon (default: 106.827153)
	LAPOR_MAP_ZOOM            map.zoom (default: 12)
	LAPOR_DEFAULT_ROUTE       router.default_route (default: #/)
	LAPOR_LOG_LEVEL           logging.level (default: info)
	LAPOR_LOG_FORMAT          logging.format (default: json)

Any other LAPOR_SECTION_KEY variable maps to section.key.

# Example

	cfg, err := config.Load()
	if err != nil {
	    return err
	}
	client := api.NewClient(&cfg.API, store)
*/
package config
