package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration outcomes.
const (
	outcomeOK              = "ok"
	outcomeAlreadyAssigned = "already_assigned"
	outcomePartialWrite    = "partial_write"
	outcomeError           = "error"
)

// Metrics holds the API's Prometheus collectors.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	registrations *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sinaliza",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sinaliza",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route. Each request reads a whole sheet.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route"}),
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sinaliza",
			Name:      "video_registrations_total",
			Help:      "Video registrations by outcome.",
		}, []string{"outcome"}),
	}
}
