package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
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

	syncPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_passes_total",
			Help: "Total number of chat sync passes",
		},
		[]string{"status"},
	)

	leadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Total number of CRM leads created",
		},
	)

	updatesAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "updates_appended_total",
			Help: "Total number of lead updates appended",
		},
	)

	updatesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "updates_skipped_total",
			Help: "Total number of chat messages skipped as already logged",
		},
	)

	callActivitiesLogged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "call_activities_logged_total",
			Help: "Total number of call activity entries logged",
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

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordSyncPass(status string) {
	syncPasses.WithLabelValues(status).Inc()
}

func RecordLeadCreated() {
	leadsCreated.Inc()
}

func RecordUpdatesAppended(n int) {
	updatesAppended.Add(float64(n))
}

func RecordUpdatesSkipped(n int) {
	updatesSkipped.Add(float64(n))
}

func RecordCallActivities(n int) {
	callActivitiesLogged.Add(float64(n))
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
