// Package server exposes the UTM zone map over HTTP: the HTML page with the
// Leaflet map and the small JSON API the page talks to.
package server

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/meridian/internal/config"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/selection"
	"github.com/UnknownOlympus/meridian/internal/utm"
)

//go:embed web/index.html.tmpl
var webFS embed.FS

// Locator is the behaviour the handlers need from the locator service.
type Locator interface {
	Select(ctx context.Context, coords models.Coordinates, source models.Source) (selection.Selection, error)
	SelectAddress(ctx context.Context, address string) (selection.Selection, error)
	Lookup(coords models.Coordinates) (utm.Zone, error)
	Reset(ctx context.Context)
	Current() (selection.Selection, bool)
	GeocodingEnabled() bool
}

// Server holds the HTTP handlers of the map service.
type Server struct {
	log     *slog.Logger
	locator Locator
	metrics *metrics.Metrics
	view    config.MapConfig
	page    *template.Template
}

// New creates a Server. It panics if the embedded page template is broken.
func New(log *slog.Logger, locator Locator, metrics *metrics.Metrics, view config.MapConfig) *Server {
	return &Server{
		log:     log,
		locator: locator,
		metrics: metrics,
		view:    view,
		page:    template.Must(template.ParseFS(webFS, "web/index.html.tmpl")),
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("POST /update_zone", s.updateZone)
	mux.HandleFunc("POST /reset", s.reset)
	mux.HandleFunc("POST /geocode", s.geocode)

	mux.HandleFunc("GET /api/zone", s.zoneAt)
	mux.HandleFunc("GET /api/zone/{label}", s.zoneByLabel)
	mux.HandleFunc("GET /api/selection", s.currentSelection)

	return requestIDMiddleware(s.accessLogMiddleware(gzipMiddleware(mux)))
}
