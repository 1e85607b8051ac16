package api

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts gateway calls by method, resource and outcome
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "magnus_api_requests_total",
			Help: "Total number of calls made to the remote content service",
		},
		[]string{"method", "resource", "outcome"},
	)

	// RequestDuration tracks gateway call latency in seconds
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "magnus_api_request_duration_seconds",
			Help:    "Duration of calls made to the remote content service in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "resource"},
	)
)

// resource reduces a path to its first segment to keep label cardinality
// bounded: "/blogs/featured?x=1" -> "blogs".
func resource(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if e, ok := err.(*Error); ok {
		return e.Kind.String()
	}
	return "invalid"
}

func observe(method, path string, err error, elapsed time.Duration) {
	res := resource(path)
	RequestsTotal.WithLabelValues(method, res, outcome(err)).Inc()
	RequestDuration.WithLabelValues(method, res).Observe(elapsed.Seconds())
}
