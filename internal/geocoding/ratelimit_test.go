package geocoding_test

import (
	"context"
	"testing"
	"time"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestWithRateLimit(t *testing.T) {
	t.Run("passes calls through", func(t *testing.T) {
		ctx := t.Context()
		next := mocks.NewProvider(t)
		coords := &models.Coordinates{Latitude: 1, Longitude: 2}
		next.On("Geocode", ctx, "Vienna").Return(coords, nil).Once()

		provider := geocoding.WithRateLimit(next, rate.NewLimiter(rate.Inf, 0))
		got, err := provider.Geocode(ctx, "Vienna")

		require.NoError(t, err)
		assert.Equal(t, coords, got)
	})

	t.Run("waiting is bounded by the context", func(t *testing.T) {
		next := mocks.NewProvider(t)
		limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
		require.True(t, limiter.Allow(), "drain the only token")

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		provider := geocoding.WithRateLimit(next, limiter)
		got, err := provider.Geocode(ctx, "Vienna")

		require.Nil(t, got)
		require.ErrorContains(t, err, "rate limit exceeded")
		next.AssertNotCalled(t, "Geocode")
	})
}
