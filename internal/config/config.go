package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the UTM zone map service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - HTTP: Listener settings of the map server.
// - Monitoring: Port of the health and metrics server.
// - Geocoder: Address search provider settings.
// - Map: Initial view of the rendered map.
type Config struct {
	Env        string           `mapstructure:"env"`        // Env is the current environment: local, development, production.
	HTTP       HTTPConfig       `mapstructure:"http"`       // HTTP holds the map server settings.
	Monitoring MonitoringConfig `mapstructure:"monitoring"` // Monitoring holds the health/metrics server settings.
	Geocoder   GeocoderConfig   `mapstructure:"geocoder"`   // Geocoder holds the address search settings.
	Map        MapConfig        `mapstructure:"map"`        // Map holds the map view defaults.
}

// HTTPConfig holds the settings of the public map server.
type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MonitoringConfig holds the settings of the health and metrics server.
type MonitoringConfig struct {
	Port int `mapstructure:"port"`
}

// GeocoderConfig describes the provider used to resolve addresses.
type GeocoderConfig struct {
	Provider  string        `mapstructure:"provider"`   // Provider is one of google, nominatim, none.
	APIKey    string        `mapstructure:"api_key"`    // APIKey is required by the Google provider.
	RateLimit float64       `mapstructure:"rate_limit"` // RateLimit is the request budget per second, 0 disables limiting.
	Timeout   time.Duration `mapstructure:"timeout"`    // Timeout bounds a single provider call.
	UserAgent string        `mapstructure:"user_agent"` // UserAgent is sent to Nominatim as its usage policy demands.
	Language  string        `mapstructure:"language"`   // Language is the preferred result language.
}

// MapConfig holds the initial map view.
type MapConfig struct {
	DefaultLat   float64 `mapstructure:"default_lat"`
	DefaultLon   float64 `mapstructure:"default_lon"`
	DefaultZoom  int     `mapstructure:"default_zoom"`
	SelectedZoom int     `mapstructure:"selected_zoom"`
}

const envPrefix = "MERIDIAN"

// MustLoad reads .env, an optional YAML file and MERIDIAN_* environment variables.
// It panics when the configuration cannot be parsed or is invalid.
func MustLoad() *Config {
	_ = godotenv.Load()

	cfg, err := load()
	if err != nil {
		panic("failed to parse configuration: " + err.Error())
	}

	if err = cfg.Validate(); err != nil {
		panic(err.Error())
	}

	return cfg
}

func load() (*Config, error) {
	vpr := viper.New()
	setDefaults(vpr)

	path, explicit := os.LookupEnv(envPrefix + "_CONFIG")
	if explicit {
		vpr.SetConfigFile(path)
	} else {
		vpr.SetConfigName("config")
		vpr.SetConfigType("yaml")
		vpr.AddConfigPath(".")
		vpr.AddConfigPath("./configs")
	}

	if err := vpr.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	// MERIDIAN_HTTP_PORT -> http.port
	vpr.SetEnvPrefix(envPrefix)
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	var cfg Config
	if err := vpr.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Geocoder.Provider = strings.ToLower(strings.TrimSpace(cfg.Geocoder.Provider))

	return &cfg, nil
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "production")
	vpr.SetDefault("http.port", 5000)
	vpr.SetDefault("http.read_timeout", "5s")
	vpr.SetDefault("http.write_timeout", "30s")
	vpr.SetDefault("http.shutdown_timeout", "10s")
	vpr.SetDefault("monitoring.port", 8080)
	vpr.SetDefault("geocoder.provider", "nominatim")
	vpr.SetDefault("geocoder.api_key", "")
	vpr.SetDefault("geocoder.rate_limit", 1)
	vpr.SetDefault("geocoder.timeout", "10s")
	vpr.SetDefault("geocoder.user_agent", "Meridian-UTM-Map/1.0 (https://github.com/UnknownOlympus/meridian)")
	vpr.SetDefault("geocoder.language", "en")
	vpr.SetDefault("map.default_lat", 20)
	vpr.SetDefault("map.default_lon", 0)
	vpr.SetDefault("map.default_zoom", 2)
	vpr.SetDefault("map.selected_zoom", 5)
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	var errs []string

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Sprintf("http.port must be 1-65535, got %d", c.HTTP.Port))
	}
	if c.Monitoring.Port <= 0 || c.Monitoring.Port > 65535 {
		errs = append(errs, fmt.Sprintf("monitoring.port must be 1-65535, got %d", c.Monitoring.Port))
	}
	if c.HTTP.Port == c.Monitoring.Port {
		errs = append(errs, "http.port and monitoring.port must differ")
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		errs = append(errs, "http timeouts must be positive")
	}
	switch c.Geocoder.Provider {
	case "google":
		if c.Geocoder.APIKey == "" {
			errs = append(errs, "geocoder.api_key is required for the google provider")
		}
	case "nominatim", "none":
	default:
		errs = append(errs, fmt.Sprintf("geocoder.provider must be google, nominatim or none, got %q", c.Geocoder.Provider))
	}
	if c.Geocoder.RateLimit < 0 {
		errs = append(errs, "geocoder.rate_limit must not be negative")
	}
	if c.Map.DefaultZoom < 0 || c.Map.SelectedZoom < 0 {
		errs = append(errs, "map zoom levels must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
