package handler

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "utility_docs"

var (
	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_in_flight",
		Help:      "Number of http requests currently being served.",
	})

	httpRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of http requests by route and status code.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
	}, []string{"route", "code"})

	// Rendered pages are a few kilobytes, assets up to a few hundred
	httpResponseSizeBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_response_size_bytes",
		Help:      "Size of http response bodies by route.",
		Buckets:   prometheus.ExponentialBuckets(512, 4, 7),
	}, []string{"route"})
)

// Metrics is a handler that collects request durations and response sizes per route
func Metrics(h http.Handler, routeMatcher RouteMatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeMatcher.Match(r)

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		m := httpsnoop.CaptureMetrics(h, w, r)

		httpRequestDurationSeconds.WithLabelValues(route, strconv.Itoa(m.Code)).Observe(m.Duration.Seconds())
		httpResponseSizeBytes.WithLabelValues(route).Observe(float64(m.Written))
	})
}
