package server

import (
	"time"

	"github.com/UnknownOlympus/meridian/internal/selection"
	"github.com/UnknownOlympus/meridian/internal/utm"
)

// updateZoneRequest is the body of POST /update_zone. Zone and Hemi are sent by
// older page versions; the server always recomputes them.
type updateZoneRequest struct {
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Source string   `json:"source,omitempty"`
	Zone   *int     `json:"zone,omitempty"`
	Hemi   string   `json:"hemi,omitempty"`
}

type geocodeRequest struct {
	Address string `json:"address"`
}

type boundsResponse struct {
	LatMin float64 `json:"lat_min"`
	LonMin float64 `json:"lon_min"`
	LatMax float64 `json:"lat_max"`
	LonMax float64 `json:"lon_max"`
}

type zoneResponse struct {
	Label      string         `json:"label"`
	Number     int            `json:"number"`
	Letter     string         `json:"letter"`
	Hemisphere string         `json:"hemisphere"`
	Bounds     boundsResponse `json:"bounds"`
	Corners    [2][2]float64  `json:"corners"`
}

type selectionResponse struct {
	Lat        float64      `json:"lat"`
	Lon        float64      `json:"lon"`
	Source     string       `json:"source"`
	SelectedAt time.Time    `json:"selected_at"`
	Zone       zoneResponse `json:"zone"`
}

type updateZoneResponse struct {
	Status    string            `json:"status"`
	Zone      string            `json:"zone"`
	Selection selectionResponse `json:"selection"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Status    string `json:"status"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func newZoneResponse(zone utm.Zone) zoneResponse {
	return zoneResponse{
		Label:      zone.Label(),
		Number:     zone.Number,
		Letter:     string(zone.Letter),
		Hemisphere: zone.Hemisphere,
		Bounds: boundsResponse{
			LatMin: zone.Bounds.LatMin,
			LonMin: zone.Bounds.LonMin,
			LatMax: zone.Bounds.LatMax,
			LonMax: zone.Bounds.LonMax,
		},
		Corners: zone.Bounds.Corners(),
	}
}

func newSelectionResponse(sel selection.Selection) selectionResponse {
	return selectionResponse{
		Lat:        sel.Coordinates.Latitude,
		Lon:        sel.Coordinates.Longitude,
		Source:     string(sel.Source),
		SelectedAt: sel.SelectedAt,
		Zone:       newZoneResponse(sel.Zone),
	}
}
