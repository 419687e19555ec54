package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	DbQueryErrorsTotal    prometheus.Counter
	LoginAttemptsTotal    *prometheus.CounterVec
	RegisterRequestsTotal prometheus.Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics registers the metric instruments with the default
// registry exactly once.
func InitAppMetrics() *AppMetrics {
	once.Do(func() {
		appMetrics = &AppMetrics{
			HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests handled",
			}, []string{"method", "path", "status"}),
			HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			}, []string{"method", "path"}),
			DbQueryErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "db_query_errors_total",
				Help: "Total number of failed database queries",
			}),
			LoginAttemptsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "Total number of login attempts by outcome",
			}, []string{"outcome"}),
			RegisterRequestsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "register_requests_total",
				Help: "Total number of register requests completed",
			}),
		}
	})
	return appMetrics
}

// Get returns the global metrics instance, initializing it if needed.
func Get() *AppMetrics {
	return InitAppMetrics()
}

// Middleware records request counts and latency per route pattern.
func Middleware(m *AppMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// Use the chi route pattern, not the raw path, to keep
			// label cardinality bounded.
			pattern := chiRoutePattern(r)
			m.HTTPRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		})
	}
}

func chiRoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}
