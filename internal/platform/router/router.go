// Package router assembles the HTTP surface: the shared middleware chain, the
// operational endpoints and the feature routes.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trainhub/internal/platform/metrics"
	"trainhub/pkg/platform/httputil"
	"trainhub/pkg/platform/middleware/request"
	"trainhub/pkg/platform/middleware/requesttime"
	"trainhub/pkg/platform/middleware/tracing"
)

const tracerName = "trainhub/http"

// Routes is implemented by feature handlers.
type Routes interface {
	Register(r chi.Router)
}

// HealthCheck reports whether one backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type options struct {
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	checks   map[string]HealthCheck
	clock    func() time.Time
}

type Option func(*options)

// WithMetrics records request metrics and exposes gatherer on /metrics.
func WithMetrics(m *metrics.Metrics, gatherer prometheus.Gatherer) Option {
	return func(o *options) {
		o.metrics = m
		o.gatherer = gatherer
	}
}

// WithHealthCheck adds a named dependency to /health.
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(o *options) {
		if check != nil {
			o.checks[name] = check
		}
	}
}

// WithClock overrides the request time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// New returns the root handler.
func New(logger *slog.Logger, routes []Routes, opts ...Option) http.Handler {
	o := &options{checks: map[string]HealthCheck{}}
	for _, opt := range opts {
		opt(o)
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(logger))
	r.Use(request.Logger(logger))
	if o.clock != nil {
		r.Use(requesttime.WithClock(o.clock))
	} else {
		r.Use(requesttime.Middleware)
	}
	r.Use(tracing.Middleware(tracerName))
	r.Use(o.metrics.Middleware)

	r.Get("/health", healthHandler(o.checks))
	if o.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{}))
	}

	for _, rt := range routes {
		rt.Register(r)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "not_found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Error: "method_not_allowed"})
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
