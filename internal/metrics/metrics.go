package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Selections     *prometheus.CounterVec
	Rejections     *prometheus.CounterVec
	Resets         prometheus.Counter
	APIErrors      prometheus.Counter
	GeocodeSeconds *prometheus.HistogramVec
	HTTPSeconds    *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Selections: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "utm_selections_total",
			Help: "Total number of accepted zone selections.",
		}, []string{"source"}),
		Rejections: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "utm_rejected_coordinates_total",
			Help: "Total number of coordinates rejected by validation.",
		}, []string{"reason"}),
		Resets: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "utm_selection_resets_total",
			Help: "Total number of selection resets.",
		}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		HTTPSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the map server.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}
