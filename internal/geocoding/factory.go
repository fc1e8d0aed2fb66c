package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeNone disables address search.
	ProviderTypeNone ProviderType = "none"
)

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType  // Type of provider to create
	APIKey    string        // API key (Google only)
	RateLimit float64       // Requests per second, 0 means unlimited
	Timeout   time.Duration // Timeout of a single HTTP call
	UserAgent string        // User-Agent header (Nominatim only)
	Language  string        // Preferred result language
	Logger    *slog.Logger  // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration.
// ProviderTypeNone yields a nil Provider and a nil error.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return newNominatimProvider(config)
	case ProviderTypeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	// The Google client has its own limiter, it only takes whole requests per second.
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(int(math.Ceil(config.RateLimit))))
	}

	if config.Timeout > 0 {
		clientOpts = append(clientOpts, maps.WithHTTPClient(&http.Client{Timeout: config.Timeout}))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Language, config.Logger), nil
}

func newNominatimProvider(config ProviderConfig) (Provider, error) {
	if config.UserAgent == "" {
		return nil, errors.New("user agent is required for Nominatim provider")
	}

	provider := NewNominatimProvider(config.UserAgent, config.Language, config.Timeout, config.Logger)
	if config.RateLimit <= 0 {
		return provider, nil
	}

	burst := max(1, int(config.RateLimit))

	return WithRateLimit(provider, rate.NewLimiter(rate.Limit(config.RateLimit), burst)), nil
}
