package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder instruments outgoing backend calls with Prometheus collectors so
// services embedding the SDK can scrape client-side request health.
type Recorder struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRecorder registers the client collectors on a private registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "smarteval_client_requests_total",
		Help: "Total number of backend requests issued by the client",
	}, []string{"method", "endpoint", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smarteval_client_request_duration_seconds",
		Help:    "Duration of backend requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	registry.MustRegister(requestTotal, requestDuration)

	return &Recorder{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
	}
}

// ObserveRequest records one completed backend call. Status 0 means no
// response was received.
func (r *Recorder) ObserveRequest(method, endpoint string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	code := strconv.Itoa(status)
	r.requestTotal.WithLabelValues(method, endpoint, code).Inc()
	r.requestDuration.WithLabelValues(method, endpoint, code).Observe(duration.Seconds())
}

// Handler exposes the registry for scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
