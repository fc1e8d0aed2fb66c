package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/selection"
	"github.com/UnknownOlympus/meridian/internal/service"
	"github.com/UnknownOlympus/meridian/internal/utm"
)

const maxBodyBytes = 1 << 16

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.locator.Current()
	s.renderPage(w, r, sel, ok)
}

func (s *Server) updateZone(w http.ResponseWriter, r *http.Request) {
	var req updateZoneRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if req.Lat == nil || req.Lon == nil {
		s.writeError(w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}

	source := models.SourceManual
	if req.Source != "" {
		source = models.Source(req.Source)
		if !source.Valid() {
			s.writeError(w, r, http.StatusBadRequest, "source must be click, manual or address")
			return
		}
	}

	sel, err := s.locator.Select(r.Context(), models.Coordinates{Latitude: *req.Lat, Longitude: *req.Lon}, source)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeSelected(w, r, sel)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.locator.Reset(r.Context())
	s.writeJSON(w, r, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) geocode(w http.ResponseWriter, r *http.Request) {
	var req geocodeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	sel, err := s.locator.SelectAddress(r.Context(), req.Address)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeSelected(w, r, sel)
}

func (s *Server) zoneAt(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat, errLat := strconv.ParseFloat(query.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(query.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		s.writeError(w, r, http.StatusBadRequest, "lat and lon query parameters must be numbers")
		return
	}

	zone, err := s.locator.Lookup(models.Coordinates{Latitude: lat, Longitude: lon})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, newZoneResponse(zone))
}

func (s *Server) zoneByLabel(w http.ResponseWriter, r *http.Request) {
	zone, err := utm.ZoneFromLabel(r.PathValue("label"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, r, http.StatusOK, newZoneResponse(zone))
}

func (s *Server) currentSelection(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.locator.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.writeJSON(w, r, http.StatusOK, newSelectionResponse(sel))
}

func (s *Server) writeSelected(w http.ResponseWriter, r *http.Request, sel selection.Selection) {
	s.writeJSON(w, r, http.StatusOK, updateZoneResponse{
		Status:    "ok",
		Zone:      sel.Zone.Label(),
		Selection: newSelectionResponse(sel),
	})
}

// decodeJSON reads exactly one JSON object into dst. It writes the error
// response itself and reports whether the handler may continue.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		s.writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		s.writeError(w, r, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrAddressNotFound):
		s.writeError(w, r, http.StatusNotFound, "no location found for this address")
	case errors.Is(err, service.ErrGeocodingDisabled):
		s.writeError(w, r, http.StatusNotImplemented, "address search is disabled")
	case errors.Is(err, service.ErrGeocodingFailed):
		s.writeError(w, r, http.StatusBadGateway, "address search is unavailable, try again later")
	default:
		loggerFromContext(r.Context(), s.log).ErrorContext(r.Context(), "request failed", "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggerFromContext(r.Context(), s.log).ErrorContext(r.Context(), "encode failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, errorResponse{
		Status:    "error",
		Error:     msg,
		RequestID: requestIDFromContext(r.Context()),
	})
}
