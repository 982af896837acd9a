package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xavierca1/ligue-crm/internal/crm"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	crmEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_store_events_total",
			Help: "Total number of CRM store mutations by event type",
		},
		[]string{"type"},
	)

	crmRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crm_records",
			Help: "Number of records currently held per collection",
		},
		[]string{"collection"},
	)

	authFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_login_failures_total",
			Help: "Total number of rejected login attempts",
		},
	)

	overdueLeads = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crm_overdue_leads",
			Help: "Open leads past their expected close date",
		},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern keeps label cardinality bounded: /contacts/{id} rather than
// one series per id.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// StoreMetrics returns a store listener that counts mutations and tracks the
// size of each collection.
func StoreMetrics(s *crm.Store) crm.Listener {
	return func(ev crm.Event) {
		crmEvents.WithLabelValues(string(ev.Type)).Inc()
		var sum crm.Summary
		if err := crm.Do(s, func(st *crm.Store) { sum = st.Summary() }); err != nil {
			return
		}
		crmRecords.WithLabelValues("contacts").Set(float64(sum.Contacts))
		crmRecords.WithLabelValues("leads").Set(float64(sum.Leads))
		crmRecords.WithLabelValues("insights").Set(float64(sum.Insights))
	}
}

func RecordLoginFailure() {
	authFailures.Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}

func SetOverdueLeads(n int) {
	overdueLeads.Set(float64(n))
}
