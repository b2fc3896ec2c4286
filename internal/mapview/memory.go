// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package mapview

import (
	"sync"
)

// MemoryEngine is a headless Engine that records every call.
type MemoryEngine struct {
	mu   sync.Mutex
	maps []*MemoryMap
}

// NewMemoryEngine creates an empty MemoryEngine.
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{}
}

// NewMap implements Engine.
func (e *MemoryEngine) NewMap(containerID string, opts MapOptions) (Map, error) {
	m := &MemoryMap{
		Container: containerID,
		Options:   opts,
		center:    opts.Center,
		zoom:      opts.Zoom,
	}
	e.mu.Lock()
	e.maps = append(e.maps, m)
	e.mu.Unlock()
	return m, nil
}

// Maps returns every map mounted so far.
func (e *MemoryEngine) Maps() []*MemoryMap {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*MemoryMap(nil), e.maps...)
}

// FitCall records one FitBounds call.
type FitCall struct {
	Bounds  Bounds
	Padding int
}

// MemoryMap is the Map of a MemoryEngine.
type MemoryMap struct {
	Container string
	Options   MapOptions

	mu      sync.Mutex
	markers []*MemoryMarker
	onClick func(LatLng)
	fits    []FitCall
	center  LatLng
	zoom    int
}

// AddMarker implements Map.
func (m *MemoryMap) AddMarker(pos LatLng, opts MarkerOptions) Marker {
	mk := &MemoryMarker{pos: pos, draggable: opts.Draggable}
	m.mu.Lock()
	m.markers = append(m.markers, mk)
	m.mu.Unlock()
	return mk
}

// RemoveMarker implements Map.
func (m *MemoryMap) RemoveMarker(target Marker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, mk := range m.markers {
		if Marker(mk) == target {
			m.markers = append(m.markers[:i], m.markers[i+1:]...)
			return
		}
	}
}

// OnClick implements Map.
func (m *MemoryMap) OnClick(fn func(LatLng)) {
	m.mu.Lock()
	m.onClick = fn
	m.mu.Unlock()
}

// FitBounds implements Map.
func (m *MemoryMap) FitBounds(b Bounds, padding int) {
	m.mu.Lock()
	m.fits = append(m.fits, FitCall{Bounds: b, Padding: padding})
	m.center = LatLng{
		Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
		Lng: (b.SouthWest.Lng + b.NorthEast.Lng) / 2,
	}
	m.mu.Unlock()
}

// SetView implements Map.
func (m *MemoryMap) SetView(center LatLng, zoom int) {
	m.mu.Lock()
	m.center, m.zoom = center, zoom
	m.mu.Unlock()
}

// Click simulates a user click at p.
func (m *MemoryMap) Click(p LatLng) {
	m.mu.Lock()
	fn := m.onClick
	m.mu.Unlock()
	if fn != nil {
		fn(p)
	}
}

// Markers returns the markers currently on the map.
func (m *MemoryMap) Markers() []*MemoryMarker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MemoryMarker(nil), m.markers...)
}

// Fits returns every FitBounds call.
func (m *MemoryMap) Fits() []FitCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]FitCall(nil), m.fits...)
}

// View returns the current center and zoom.
func (m *MemoryMap) View() (LatLng, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.center, m.zoom
}

// MemoryMarker is the Marker of a MemoryMap.
type MemoryMarker struct {
	mu        sync.Mutex
	pos       LatLng
	draggable bool
	popup     string
	popupOpen bool
	onDragEnd func(LatLng)
}

// Position implements Marker.
func (mk *MemoryMarker) Position() LatLng {
	mk.mu.Lock()
	defer mk.mu.Unlock()
	return mk.pos
}

// BindPopup implements Marker.
func (mk *MemoryMarker) BindPopup(html string) {
	mk.mu.Lock()
	mk.popup = html
	mk.mu.Unlock()
}

// OpenPopup implements Marker.
func (mk *MemoryMarker) OpenPopup() {
	mk.mu.Lock()
	mk.popupOpen = true
	mk.mu.Unlock()
}

// OnDragEnd implements Marker.
func (mk *MemoryMarker) OnDragEnd(fn func(LatLng)) {
	mk.mu.Lock()
	mk.onDragEnd = fn
	mk.mu.Unlock()
}

// Draggable reports whether the marker was created draggable.
func (mk *MemoryMarker) Draggable() bool {
	return mk.draggable
}

// Popup returns the bound popup HTML and whether it is open.
func (mk *MemoryMarker) Popup() (string, bool) {
	mk.mu.Lock()
	defer mk.mu.Unlock()
	return mk.popup, mk.popupOpen
}

// DragTo simulates the user dragging the marker to p. Static markers do not move.
func (mk *MemoryMarker) DragTo(p LatLng) {
	mk.mu.Lock()
	if !mk.draggable {
		mk.mu.Unlock()
		return
	}
	mk.pos = p
	fn := mk.onDragEnd
	mk.mu.Unlock()
	if fn != nil {
		fn(p)
	}
}
