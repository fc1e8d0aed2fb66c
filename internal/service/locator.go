package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/selection"
	"github.com/UnknownOlympus/meridian/internal/utm"
)

// User-facing validation messages.
const (
	MsgLatitudeRange  = "UTM is only defined between 80°S and 84°N"
	MsgLongitudeRange = "longitude must be between -180° and 180°"
	MsgEmptyAddress   = "address must not be empty"
)

var (
	// ErrGeocodingDisabled is returned by SelectAddress when no provider is configured.
	ErrGeocodingDisabled = errors.New("address search is disabled")
	// ErrAddressNotFound is returned when the provider has no result for an address.
	ErrAddressNotFound = errors.New("address not found")
	// ErrGeocodingFailed wraps provider failures other than an empty result.
	ErrGeocodingFailed = errors.New("geocoding provider failed")
)

// ValidationError reports input the user has to correct.
type ValidationError struct {
	Message string // Message is safe to show to the user.
	Err     error  // Err is the underlying sentinel, e.g. utm.ErrOutOfDefinedRange.
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LocatorService validates user input, locates UTM zones and keeps the current selection.
type LocatorService struct {
	log          *slog.Logger       // Logger for service activities
	store        *selection.Store   // Holder of the current selection
	provider     geocoding.Provider // Address resolver, nil when address search is disabled
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for tracking service activity
	now          func() time.Time
}

// NewLocatorService creates a new LocatorService. provider may be nil.
func NewLocatorService(
	log *slog.Logger,
	store *selection.Store,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
) *LocatorService {
	return &LocatorService{
		log:          log,
		store:        store,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		now:          time.Now,
	}
}

// GeocodingEnabled reports whether SelectAddress can be used.
func (ls *LocatorService) GeocodingEnabled() bool {
	return ls.provider != nil
}

// Lookup returns the zone of a coordinate without touching the selection.
func (ls *LocatorService) Lookup(coords models.Coordinates) (utm.Zone, error) {
	zone, err := utm.Locate(coords)
	if err != nil {
		return utm.Zone{}, validationError(err)
	}

	return zone, nil
}

// Select validates a coordinate, locates its zone and makes it the current selection.
func (ls *LocatorService) Select(
	ctx context.Context,
	coords models.Coordinates,
	source models.Source,
) (selection.Selection, error) {
	zone, err := utm.Locate(coords)
	if err != nil {
		verr := validationError(err)
		ls.metrics.Rejections.WithLabelValues(rejectionReason(err)).Inc()
		ls.log.InfoContext(ctx, "Rejected coordinates", "lat", coords.Latitude, "lon", coords.Longitude,
			"source", source, "error", err)
		return selection.Selection{}, verr
	}

	sel := selection.Selection{
		Coordinates: coords,
		Zone:        zone,
		Source:      source,
		SelectedAt:  ls.now(),
	}
	ls.store.Set(sel)
	ls.metrics.Selections.WithLabelValues(string(source)).Inc()

	ls.log.InfoContext(ctx, "Zone selected", "zone", zone.Label(), "lat", coords.Latitude,
		"lon", coords.Longitude, "source", source)

	return sel, nil
}

// SelectAddress resolves an address with the geocoding provider and selects the result.
func (ls *LocatorService) SelectAddress(ctx context.Context, address string) (selection.Selection, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return selection.Selection{}, &ValidationError{Message: MsgEmptyAddress}
	}

	if ls.provider == nil {
		return selection.Selection{}, ErrGeocodingDisabled
	}

	startTime := time.Now()
	coords, err := ls.provider.Geocode(ctx, address)
	ls.metrics.GeocodeSeconds.WithLabelValues(ls.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		if errors.Is(err, geocoding.ErrNoResult) {
			ls.log.InfoContext(ctx, "Address not found", "address", address)
			return selection.Selection{}, fmt.Errorf("%w: %s", ErrAddressNotFound, address)
		}

		ls.metrics.APIErrors.Inc()
		ls.log.ErrorContext(ctx, "Failed to geocode", "address", address, "error", err)

		return selection.Selection{}, fmt.Errorf("%w: %w", ErrGeocodingFailed, err)
	}

	return ls.Select(ctx, *coords, models.SourceAddress)
}

// Reset clears the current selection.
func (ls *LocatorService) Reset(ctx context.Context) {
	ls.store.Reset()
	ls.metrics.Resets.Inc()
	ls.log.InfoContext(ctx, "Selection reset")
}

// Current returns the current selection, if any.
func (ls *LocatorService) Current() (selection.Selection, bool) {
	return ls.store.Current()
}

func validationError(err error) *ValidationError {
	switch {
	case errors.Is(err, utm.ErrOutOfDefinedRange):
		return &ValidationError{Message: MsgLatitudeRange, Err: utm.ErrOutOfDefinedRange}
	case errors.Is(err, utm.ErrLongitudeOutOfRange):
		return &ValidationError{Message: MsgLongitudeRange, Err: utm.ErrLongitudeOutOfRange}
	default:
		return &ValidationError{Message: err.Error(), Err: err}
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, utm.ErrOutOfDefinedRange):
		return "latitude"
	case errors.Is(err, utm.ErrLongitudeOutOfRange):
		return "longitude"
	default:
		return "other"
	}
}
