package server

import (
	"bytes"
	"net/http"

	"github.com/UnknownOlympus/meridian/internal/selection"
)

type pageData struct {
	Selection        *pageSelection
	GeocodingEnabled bool
	View             viewData
}

type pageSelection struct {
	Label string
}

// viewData is serialized into the page script, so it carries json tags.
type viewData struct {
	Center    [2]float64     `json:"center"`
	Zoom      int            `json:"zoom"`
	Selection *viewSelection `json:"selection"`
}

type viewSelection struct {
	Lat        float64       `json:"lat"`
	Lon        float64       `json:"lon"`
	Label      string        `json:"label"`
	Hemisphere string        `json:"hemisphere"`
	Corners    [2][2]float64 `json:"corners"`
}

func (s *Server) buildPage(sel selection.Selection, selected bool) pageData {
	data := pageData{
		GeocodingEnabled: s.locator.GeocodingEnabled(),
		View: viewData{
			Center: [2]float64{s.view.DefaultLat, s.view.DefaultLon},
			Zoom:   s.view.DefaultZoom,
		},
	}
	if !selected {
		return data
	}

	label := sel.Zone.Label()
	data.Selection = &pageSelection{Label: label}
	data.View.Center = [2]float64{sel.Coordinates.Latitude, sel.Coordinates.Longitude}
	data.View.Zoom = s.view.SelectedZoom
	data.View.Selection = &viewSelection{
		Lat:        sel.Coordinates.Latitude,
		Lon:        sel.Coordinates.Longitude,
		Label:      label,
		Hemisphere: sel.Zone.Hemisphere,
		Corners:    sel.Zone.Bounds.Corners(),
	}

	return data
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, sel selection.Selection, selected bool) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, s.buildPage(sel, selected)); err != nil {
		loggerFromContext(r.Context(), s.log).ErrorContext(r.Context(), "failed to render map page", "error", err)
		http.Error(w, "failed to render map page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		loggerFromContext(r.Context(), s.log).ErrorContext(r.Context(), "failed to write map page", "error", err)
	}
}
