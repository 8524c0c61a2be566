// Package metrics registers the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consulta_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "consulta_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	// QueriesTotal counts filtered queries by table and outcome. Outcome is
	// "ok" or the query error code.
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consulta_queries_total",
			Help: "Total number of filtered queries",
		},
		[]string{"table", "outcome"},
	)
	// QueryRows is the number of rows returned by successful filtered queries.
	QueryRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "consulta_query_rows",
			Help:    "Rows returned per filtered query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500},
		},
		[]string{"table"},
	)
)

// Handler returns the Prometheus HTTP handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
