// Package httptransport wires the HTTP surface: routing, middleware chain,
// health and metrics endpoints. Business logic stays in the claim service.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	claimshandler "github.com/tech920/motor-claim-decision-api-sub000/internal/claims/handler"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/ratelimit"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/httputil"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/middleware/auth"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/middleware/correlation"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/middleware/requesttime"
)

// HealthChecker reports readiness of one dependency, keyed by name.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterConfig carries everything the router needs.
type RouterConfig struct {
	Claims        claimshandler.Service
	Logger        *slog.Logger
	JWTSigningKey string
	// RateLimit guards the claim routes; nil means unlimited.
	RateLimit *ratelimit.Middleware
	// Dependencies checked by /healthz; nil entries are skipped.
	Health map[string]HealthChecker
}

// NewRouter builds the service router. Claim routes sit behind the bearer
// auth middleware; health and metrics stay open for probes and scrapers.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(correlation.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/healthz", handleHealth(cfg.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit.Handler)
		}
		r.Use(auth.Middleware(cfg.JWTSigningKey, cfg.Logger))
		claimshandler.New(cfg.Claims, cfg.Logger).Register(r)
	})

	return r
}

func handleHealth(deps map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(deps))
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Health(ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		httputil.WriteJSON(w, status, map[string]any{
			"status": http.StatusText(status),
			"checks": checks,
		})
	}
}
