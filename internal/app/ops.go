package app

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthCheckTimeout = 2 * time.Second

// healthCheck is a named dependency probe for /healthz.
type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

// newOpsRouter serves /metrics from reg and /healthz from checks.
func newOpsRouter(reg *prometheus.Registry, checks ...healthCheck) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()

		code := http.StatusOK
		body := map[string]string{}
		for _, c := range checks {
			if err := c.check(ctx); err != nil {
				code = http.StatusServiceUnavailable
				body[c.name] = err.Error()
				continue
			}
			body[c.name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)
	})

	return r
}
