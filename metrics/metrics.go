// Package metrics provides Prometheus metrics for HTTP traffic and for the
// domain: permission denials, login attempts and stock health gauges
// refreshed by the daily sweep. All metrics register with the default
// registry during package initialization and are exposed at /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	PermissionDeniedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permission_denied_total",
			Help: "Mutations rejected by the access policy",
		},
		[]string{"entity", "action"},
	)

	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	DrugsLowStock = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "drugs_low_stock",
			Help: "Drugs below their reorder level at the last sweep",
		},
	)

	DrugsExpired = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "drugs_expired",
			Help: "Drugs past their expiry date at the last sweep",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(PermissionDeniedTotal)
	prometheus.MustRegister(LoginAttemptsTotal)
	prometheus.MustRegister(DrugsLowStock)
	prometheus.MustRegister(DrugsExpired)
}
