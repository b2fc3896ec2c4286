// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package mapview

import "math"

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is the smallest box containing a set of coordinates.
type Bounds struct {
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
}

// BoundsOf returns the bounds of points. ok is false for an empty slice.
func BoundsOf(points []LatLng) (b Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b = Bounds{
		SouthWest: LatLng{Lat: math.Inf(1), Lng: math.Inf(1)},
		NorthEast: LatLng{Lat: math.Inf(-1), Lng: math.Inf(-1)},
	}
	for _, p := range points {
		b.SouthWest.Lat = math.Min(b.SouthWest.Lat, p.Lat)
		b.SouthWest.Lng = math.Min(b.SouthWest.Lng, p.Lng)
		b.NorthEast.Lat = math.Max(b.NorthEast.Lat, p.Lat)
		b.NorthEast.Lng = math.Max(b.NorthEast.Lng, p.Lng)
	}
	return b, true
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p LatLng) bool {
	return p.Lat >= b.SouthWest.Lat && p.Lat <= b.NorthEast.Lat &&
		p.Lng >= b.SouthWest.Lng && p.Lng <= b.NorthEast.Lng
}

// MapOptions configures a new map.
type MapOptions struct {
	Center              LatLng
	Zoom                int
	ZoomControlPosition string
	TileURL             string
	Attribution         string
}

// MarkerOptions configures a new marker.
type MarkerOptions struct {
	Draggable bool
}

// Engine mounts maps. It is the boundary to the rendering library.
type Engine interface {
	NewMap(containerID string, opts MapOptions) (Map, error)
}

// Map is a mounted, pannable and zoomable tile map.
type Map interface {
	AddMarker(pos LatLng, opts MarkerOptions) Marker
	RemoveMarker(m Marker)
	OnClick(fn func(LatLng))
	FitBounds(b Bounds, padding int)
	SetView(center LatLng, zoom int)
}

// Marker is a point on a Map.
type Marker interface {
	Position() LatLng
	BindPopup(html string)
	OpenPopup()
	OnDragEnd(fn func(LatLng))
}
