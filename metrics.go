package client

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leafkeeper_client",
			Name:      "http_requests_total",
			Help:      "HTTP requests sent, by method and status class.",
		},
		[]string{"method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "leafkeeper_client",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests, including failed ones.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leafkeeper_client",
			Name:      "http_retries_total",
			Help:      "Idempotent requests re-sent after a recoverable failure.",
		},
		[]string{"method"},
	)

	bookmarkFetchFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "leafkeeper_client",
			Name:      "bookmark_fetch_failures_total",
			Help:      "Bookmarked species whose details could not be loaded.",
		},
	)
)

// metricsTransport records one sample per round trip.
type metricsTransport struct{ base http.RoundTripper }

func (mt *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mt.base.RoundTrip(req)
	requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(req.Method, statusClass(resp, err)).Inc()
	return resp, err
}

func statusClass(resp *http.Response, err error) string {
	if err != nil || resp == nil {
		return "error"
	}
	return strconv.Itoa(resp.StatusCode/100) + "xx"
}
