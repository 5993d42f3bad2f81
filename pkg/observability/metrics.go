// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the beitrag service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// APIBuckets defines histogram buckets suited for CRUD API latencies,
// ranging from 5ms to 10s.
var APIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// GenerationBuckets covers text-generation backend latencies, which run
// far longer than ordinary API calls.
var GenerationBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beitrag_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "beitrag_request_duration_seconds",
			Help:    "Request duration",
			Buckets: APIBuckets,
		},
		[]string{"method"},
	)

	// AuthFailuresTotal counts rejected authentications by reason
	// (missing_token, invalid_token).
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beitrag_auth_failures_total",
			Help: "Authentication failures",
		},
		[]string{"reason"},
	)

	// GenerationDuration records content-generation backend latency in seconds.
	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "beitrag_ai_generation_seconds",
			Help:    "Content generation latency",
			Buckets: GenerationBuckets,
		},
	)

	// ImageUploadsTotal counts profile image uploads by outcome.
	ImageUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beitrag_image_uploads_total",
			Help: "Profile image uploads",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthFailuresTotal,
		GenerationDuration,
		ImageUploadsTotal,
	)
}
