package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	reconciliationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconciliation_runs_total",
			Help: "Login-time guest merges, by outcome.",
		},
		[]string{"result"},
	)

	reconciliationPushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconciliation_item_pushes_total",
			Help: "Per-item create/update pushes after a merge, by kind and outcome.",
		},
		[]string{"kind", "result"},
	)

	redemptionComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_redemption_computations_total",
			Help: "Redemption calculator invocations, by applicability.",
		},
		[]string{"applicable"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

func ObserveReconciliationRun(success bool) {
	reconciliationRuns.WithLabelValues(resultLabel(success)).Inc()
}

func ObserveReconciliationPush(kind string, success bool) {
	reconciliationPushes.WithLabelValues(kind, resultLabel(success)).Inc()
}

func ObserveRedemption(applicable bool) {
	redemptionComputations.WithLabelValues(strconv.FormatBool(applicable)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}

	return "failure"
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {

			duration := time.Since(start)
			statusCodeStr := strconv.Itoa(rw.statusCode)

			// ServeMux fills r.Pattern during routing, so read it after the
			// handler ran. The registered pattern keeps wildcard segments
			// like {productID} out of the label, bounding its cardinality.
			pathPattern := r.Pattern
			if i := strings.IndexByte(pathPattern, ' '); i >= 0 {
				pathPattern = pathPattern[i+1:]
			}

			if pathPattern == "" {
				pathPattern = r.URL.Path
			}

			httpRequestsTotal.WithLabelValues(statusCodeStr, r.Method, pathPattern).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, pathPattern).Observe(duration.Seconds())
			httpRequestsInFlight.Dec()

		}()

		next.ServeHTTP(rw, r)

	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
