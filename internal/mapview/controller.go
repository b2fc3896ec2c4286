// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package mapview

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lapor/internal/config"
	"github.com/tomtom215/lapor/internal/logging"
	"github.com/tomtom215/lapor/internal/metrics"
	"github.com/tomtom215/lapor/internal/models"
)

// zoomControlPosition is where the zoom buttons are mounted.
const zoomControlPosition = "topright"

// ErrNoEngine is returned by Acquire when the controller has no Engine.
var ErrNoEngine = errors.New("mapview: no rendering engine")

// AcquireOptions override the default view. They only apply to the first Acquire.
type AcquireOptions struct {
	Center *LatLng
	Zoom   *int

	// OnPick receives the coordinate of the authoring marker whenever it is
	// placed or dragged without a callback of its own (map clicks included).
	OnPick func(LatLng)
}

// Controller owns the singleton map and its markers. It is safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	engine  Engine
	cfg     config.MapConfig
	popups  PopupBuilder
	m       Map
	onPick  func(LatLng)
	markers []Marker
	state   MarkerState
	logger  zerolog.Logger
}

// NewController creates a controller that mounts maps with engine.
func NewController(engine Engine, cfg config.MapConfig) *Controller {
	return &Controller{
		engine: engine,
		cfg:    cfg,
		popups: PopupBuilder{
			ExcerptLength: cfg.ExcerptLength,
			DetailRoute:   cfg.DetailRoute,
			DetailLabel:   cfg.DetailLabel,
		},
		logger: logging.WithComponent("mapview"),
	}
}

// Acquire mounts the map on containerID the first time it is called and
// returns that same Map on every later call, ignoring containerID and opts.
// A click on the map places the authoring marker.
func (c *Controller) Acquire(containerID string, opts *AcquireOptions) (Map, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.m != nil {
		return c.m, nil
	}
	if c.engine == nil {
		return nil, ErrNoEngine
	}

	mapOpts := MapOptions{
		Center:              LatLng{Lat: c.cfg.CenterLat, Lng: c.cfg.CenterLon},
		Zoom:                c.cfg.Zoom,
		ZoomControlPosition: zoomControlPosition,
		TileURL:             c.cfg.TileURL,
		Attribution:         c.cfg.Attribution,
	}
	if opts != nil {
		if opts.Center != nil {
			mapOpts.Center = *opts.Center
		}
		if opts.Zoom != nil {
			mapOpts.Zoom = *opts.Zoom
		}
		c.onPick = opts.OnPick
	}

	m, err := c.engine.NewMap(containerID, mapOpts)
	if err != nil {
		return nil, fmt.Errorf("mount map on %q: %w", containerID, err)
	}
	m.OnClick(func(p LatLng) {
		c.PlaceSingleMarker(p.Lat, p.Lng, nil)
	})
	c.m = m

	c.logger.Info().Str("container", containerID).
		Float64("lat", mapOpts.Center.Lat).Float64("lng", mapOpts.Center.Lng).
		Int("zoom", mapOpts.Zoom).Msg("Map mounted")
	return m, nil
}

// Map returns the acquired map, or nil before the first Acquire.
func (c *Controller) Map() Map {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m
}

// State returns a snapshot of the current markers.
func (c *Controller) State() MarkerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// PlaceSingleMarker replaces every marker with one draggable marker. onDragEnd,
// or the OnPick handler given to Acquire when nil, receives the new position
// after each drag. It is a no-op before the map is acquired.
func (c *Controller) PlaceSingleMarker(lat, lng float64, onDragEnd func(LatLng)) {
	c.mu.Lock()
	if c.m == nil {
		c.mu.Unlock()
		c.logger.Debug().Msg("PlaceSingleMarker before map acquired")
		return
	}

	c.clearLocked()

	pos := LatLng{Lat: lat, Lng: lng}
	marker := c.m.AddMarker(pos, MarkerOptions{Draggable: true})
	c.markers = []Marker{marker}
	c.state = MarkerState{Mode: ModeSingle, Single: &pos}

	cb := onDragEnd
	if cb == nil {
		cb = c.onPick
	}
	marker.OnDragEnd(func(p LatLng) {
		c.mu.Lock()
		if c.state.Mode == ModeSingle && len(c.markers) == 1 && c.markers[0] == marker {
			moved := p
			c.state.Single = &moved
		}
		c.mu.Unlock()
		if cb != nil {
			cb(p)
		}
	})
	pick := c.onPick
	c.mu.Unlock()

	metrics.SetMapMarkers(ModeSingle.String(), 1)
	if onDragEnd == nil && pick != nil {
		pick(pos)
	}
}

// RenderReportMarkers replaces every marker with one static marker per report
// that has both coordinates, then fits the view to them. Reports without
// coordinates are skipped. It returns the number of markers placed and is a
// no-op returning 0 when m is nil or not the acquired map.
func (c *Controller) RenderReportMarkers(m Map, reports []models.Report) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ownsLocked(m) {
		return 0
	}

	c.clearLocked()

	points := make([]MarkerPoint, 0, len(reports))
	positions := make([]LatLng, 0, len(reports))
	skipped := 0
	for i := range reports {
		r := &reports[i]
		if !r.HasCoordinates() {
			skipped++
			continue
		}

		pos := LatLng{Lat: *r.Latitude, Lng: *r.Longitude}
		popup := c.popups.Build(r)

		marker := m.AddMarker(pos, MarkerOptions{Draggable: false})
		marker.BindPopup(popup)

		c.markers = append(c.markers, marker)
		points = append(points, MarkerPoint{Position: pos, Popup: popup})
		positions = append(positions, pos)
	}

	c.state = MarkerState{Mode: ModeCollection, Collection: points}

	if bounds, ok := BoundsOf(positions); ok {
		m.FitBounds(bounds, c.cfg.FitPadding)
	}

	metrics.SetMapMarkers(ModeCollection.String(), len(points))
	c.logger.Debug().Int("placed", len(points)).Int("skipped", skipped).Msg("Report markers rendered")
	return len(points)
}

// RenderSingleHighlightedMarker replaces every marker with one static marker,
// opens popupContent on it when non-empty, and centers the view on it at the
// focus zoom. It is a no-op when m is not the acquired map or a coordinate is nil.
func (c *Controller) RenderSingleHighlightedMarker(m Map, lat, lng *float64, popupContent string) {
	if lat == nil || lng == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ownsLocked(m) {
		return
	}

	c.clearLocked()

	pos := LatLng{Lat: *lat, Lng: *lng}
	marker := m.AddMarker(pos, MarkerOptions{Draggable: false})
	if popupContent != "" {
		marker.BindPopup(popupContent)
		marker.OpenPopup()
	}
	c.markers = []Marker{marker}
	c.state = MarkerState{Mode: ModeCollection, Collection: []MarkerPoint{{Position: pos, Popup: popupContent}}}

	m.SetView(pos, c.cfg.FocusZoom)
	metrics.SetMapMarkers(ModeCollection.String(), 1)
}

// ownsLocked reports whether m is the acquired map.
func (c *Controller) ownsLocked(m Map) bool {
	if m == nil || c.m == nil {
		return false
	}
	if m != c.m {
		c.logger.Warn().Msg("Ignoring render on a map not owned by this controller")
		return false
	}
	return true
}

// clearLocked removes every marker and resets the state to Empty.
func (c *Controller) clearLocked() {
	for _, mk := range c.markers {
		c.m.RemoveMarker(mk)
	}
	c.markers = nil
	c.state = MarkerState{Mode: ModeEmpty}
}
