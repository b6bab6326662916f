package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skypix_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skypix_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	pointsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skypix_points_total",
			Help: "Coordinate points processed, by transform stage.",
		},
		[]string{"stage"},
	)

	offChipTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skypix_off_chip_total",
			Help: "Points that resolved to no detector.",
		},
	)

	batchDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skypix_batch_duration_seconds",
			Help:    "Full catalog-to-pixel batch duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(pointsTotal)
	prometheus.MustRegister(offChipTotal)
	prometheus.MustRegister(batchDurationSeconds)
}

// ObservePoints records n points processed by a transform stage
// ("observed", "pupil", "chip", "pixel").
func ObservePoints(stage string, n int) {
	pointsTotal.WithLabelValues(stage).Add(float64(n))
}

// ObserveOffChip records points that missed every detector.
func ObserveOffChip(n int) {
	offChipTotal.Add(float64(n))
}

// ObserveBatch records the duration of one batch run.
func ObserveBatch(d time.Duration) {
	batchDurationSeconds.Observe(d.Seconds())
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// knownRoutes are the exact paths the service serves; anything else is
// collapsed to "other" to keep label cardinality bounded against scanners.
var knownRoutes = map[string]bool{
	"/":                true,
	"/healthz":         true,
	"/readyz":          true,
	"/metrics":         true,
	"/api/v1/pixel":    true,
	"/api/v1/chip":     true,
	"/api/v1/observed": true,
	"/api/v1/camera":   true,
}

// normalizeRoute maps a request path to a bounded metric label.
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		path := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(path, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, r.Method).Observe(duration)
	})
}
