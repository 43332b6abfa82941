package infra

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	matchEvents  *prometheus.CounterVec
	liveViewers  prometheus.GaugeFunc
	timersActive prometheus.GaugeFunc
}

// NewMetrics creates a registry with the standard process collectors plus
// the application's own.
func NewMetrics(hub *LiveHub, activeTimers func() int) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	m := &Metrics{registry: reg}

	m.httpRequests = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitchside",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	m.httpDuration = promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pitchside",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	m.matchEvents = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitchside",
		Name:      "match_events_recorded_total",
		Help:      "Match events recorded, by event type.",
	}, []string{"event_type"})

	m.liveViewers = promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "pitchside",
		Name:      "live_viewers",
		Help:      "WebSocket viewers currently attached.",
	}, func() float64 {
		if hub == nil {
			return 0
		}
		return float64(hub.totalViewers())
	})

	m.timersActive = promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "pitchside",
		Name:      "match_timers_running",
		Help:      "Match timers currently ticking.",
	}, func() float64 {
		if activeTimers == nil {
			return 0
		}
		return float64(activeTimers())
	})

	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveMatchEvent counts one recorded match event.
func (m *Metrics) ObserveMatchEvent(eventType string) {
	m.matchEvents.WithLabelValues(eventType).Inc()
}

// HTTPMiddleware records request counts and latency per chi route pattern.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		m.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
