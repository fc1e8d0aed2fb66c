package geocoding

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// Provider resolves a free-text address to coordinates.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// ErrNoResult is matched by the empty-result errors of every provider.
var ErrNoResult = errors.New("address not found")
