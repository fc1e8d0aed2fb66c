package geocoding

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/meridian/internal/models"
	"golang.org/x/time/rate"
)

type limitedProvider struct {
	next    Provider
	limiter *rate.Limiter
}

// WithRateLimit makes every Geocode call wait for a token from limiter first.
func WithRateLimit(next Provider, limiter *rate.Limiter) Provider {
	return &limitedProvider{next: next, limiter: limiter}
}

func (lp *limitedProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if err := lp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	return lp.next.Geocode(ctx, address)
}
