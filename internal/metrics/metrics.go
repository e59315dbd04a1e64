// Package metrics exposes the HTTP request histogram and response counter.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	env            string
	requestLatency *prometheus.HistogramVec
	responses      *prometheus.CounterVec
}

func New(env string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		env: env,
		requestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "path", "code", "env"}),
		responses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_responses_total",
			Help: "Count of HTTP responses by status code.",
		}, []string{"code", "env"}),
	}
}

// Middleware records latency and response counts per matched route.
// Register it with mux's Use so the route template is available.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		code := strconv.Itoa(rec.status)
		m.requestLatency.WithLabelValues(r.Method, routePath(r), code, m.env).Observe(time.Since(start).Seconds())
		m.responses.WithLabelValues(code, m.env).Inc()
	})
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// routePath prefers the mux route template over the raw URL to keep the
// path label cardinality bounded.
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}
