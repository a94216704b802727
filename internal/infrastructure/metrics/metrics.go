package metrics

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"threecommas/internal/domain/model"
)

// Collector holds the client's Prometheus metrics on a private registry.
// It satisfies threecommas.Hook.
type Collector struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	StreamEvents    *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threecommas_requests_total",
				Help: "API calls by endpoint, method and outcome",
			},
			[]string{"endpoint", "method", "outcome"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "threecommas_request_duration_seconds",
				Help:    "Latency of dispatched API calls",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"endpoint"},
		),

		StreamEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threecommas_stream_events_total",
				Help: "Websocket messages received by channel",
			},
			[]string{"channel"},
		),
	}

	c.registry.MustRegister(c.Requests, c.RequestDuration, c.StreamEvents)
	return c
}

// AfterCall records one call. Calls that never reached the network are counted but not timed.
func (c *Collector) AfterCall(_ context.Context, rec model.CallRecord) {
	endpoint := rec.Endpoint
	if endpoint == "" {
		endpoint = "raw"
	}
	c.Requests.WithLabelValues(endpoint, rec.Method, string(rec.Outcome)).Inc()
	if rec.Dispatched() {
		c.RequestDuration.WithLabelValues(endpoint).Observe(rec.Duration.Seconds())
	}
}

// ObserveEvent counts one stream event.
func (c *Collector) ObserveEvent(ev model.StreamEvent) {
	c.StreamEvents.WithLabelValues(ev.Channel).Inc()
}

// Router exposes /metrics and /healthz.
func (c *Collector) Router() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}
