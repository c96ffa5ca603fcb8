package rest

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trolley_store_requests_total",
		Help: "Requests issued to the remote record store.",
	}, []string{"method", "resource", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trolley_store_request_duration_seconds",
		Help:    "Latency of remote record store requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "resource"})
)

// observeRequest records one store round trip. The resource label is the
// collection name, never the full path, to keep cardinality bounded.
func observeRequest(method, resource, status string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, resource, status).Inc()
	requestDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}
