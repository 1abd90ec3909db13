package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(httpRequestDuration) }

var httpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"route", "status"},
)

func ObserveHTTPRequest(route string, status int, seconds float64) {
	httpRequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(seconds)
}
