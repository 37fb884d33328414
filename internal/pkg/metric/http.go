package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var _ HTTP = (*httpMetrics)(nil)

type httpMetrics struct {
	requestCounter    *prometheus.CounterVec
	durationHistogram *prometheus.HistogramVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status class",
		},
		[]string{"method", "route", "status"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"method", "route", "status"},
	)

	reg.MustRegister(counter, duration)

	return &httpMetrics{
		requestCounter:    counter,
		durationHistogram: duration,
	}
}

func (m *httpMetrics) Request(method, route string, status int, duration time.Duration) {
	class := StatusClass(status)
	m.requestCounter.WithLabelValues(method, route, class).Inc()
	m.durationHistogram.WithLabelValues(method, route, class).Observe(duration.Seconds())
}

// StatusClass buckets a status code into "1xx" through "5xx".
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
