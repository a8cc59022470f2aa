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

	leadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Total number of single-add lead submissions",
		},
		[]string{"status"},
	)

	bulkRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_lead_records_total",
			Help: "Total number of bulk-reconciled lead records by outcome",
		},
		[]string{"outcome"},
	)

	campaignsRecomputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaign_metrics_recomputed_total",
			Help: "Total number of campaign metric recomputations",
		},
	)

	searchTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_tokens_total",
			Help: "Total number of multi-key search tokens by partition",
		},
		[]string{"partition"},
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

func RecordLeadCapture(status string) {
	leadsCaptured.WithLabelValues(status).Inc()
}

func RecordBulkOutcome(outcome string, count int) {
	bulkRecords.WithLabelValues(outcome).Add(float64(count))
}

func RecordCampaignRecompute(count int) {
	campaignsRecomputed.Add(float64(count))
}

func RecordSearchPartition(partition string, count int) {
	searchTokens.WithLabelValues(partition).Add(float64(count))
}
