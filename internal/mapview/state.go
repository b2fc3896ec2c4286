// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package mapview

// Mode is the marker mode of the controller.
type Mode int

const (
	ModeEmpty Mode = iota
	ModeSingle
	ModeCollection
)

// String returns the mode name, also used as the metrics label.
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeCollection:
		return "collection"
	default:
		return "empty"
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// MarkerPoint is a static marker of the Collection mode.
type MarkerPoint struct {
	Position LatLng `json:"position"`
	Popup    string `json:"popup,omitempty"`
}

// MarkerState is a snapshot of the markers on the map.
//
// Single is set only in ModeSingle; Collection is non-nil only in ModeCollection.
type MarkerState struct {
	Mode       Mode          `json:"mode"`
	Single     *LatLng       `json:"single,omitempty"`
	Collection []MarkerPoint `json:"collection,omitempty"`
}

// Count returns the number of markers on the map.
func (s MarkerState) Count() int {
	switch s.Mode {
	case ModeSingle:
		return 1
	case ModeCollection:
		return len(s.Collection)
	default:
		return 0
	}
}

func (s MarkerState) clone() MarkerState {
	out := s
	if s.Single != nil {
		p := *s.Single
		out.Single = &p
	}
	if s.Collection != nil {
		out.Collection = append([]MarkerPoint(nil), s.Collection...)
	}
	return out
}
