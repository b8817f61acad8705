package rest

import (
	"log/slog"
	"net/http"

	"github.com/bibbank/refinance-service/internal/presentation/rest/middleware"
	"github.com/bibbank/refinance-service/pkg/auth"
)

// RouterConfig holds the cross-cutting pieces of the HTTP surface.
type RouterConfig struct {
	JWT     *auth.JWTService
	Limiter *middleware.RateLimiter
	Health  *HealthHandler
	Metrics http.Handler
	Logger  *slog.Logger
}

// NewRouter builds the HTTP handler tree. Public routes are rate limited per
// client; admin routes require an admin or operator token.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	public := func(fn http.HandlerFunc) http.Handler {
		if cfg.Limiter == nil {
			return fn
		}
		return cfg.Limiter.Middleware(fn)
	}
	mux.Handle("POST /v1/eligibility", public(h.evaluate))
	mux.Handle("POST /v1/quick-quote", public(h.quickQuote))
	mux.Handle("POST /v1/leads", public(h.captureLead))
	mux.Handle("POST /v1/applications", public(h.submitApplication))
	mux.Handle("GET /v1/applications/{id}", public(h.getApplication))
	mux.Handle("POST /v1/applications/{id}/submission", public(h.proceedToSubmission))
	mux.Handle("POST /v1/savings-comparison", public(h.compareSavings))

	admin := middleware.RequireRoles(cfg.JWT, auth.RoleAdmin, auth.RoleOperator)
	mux.Handle("GET /v1/admin/applications", admin(http.HandlerFunc(h.listApplications)))
	mux.Handle("POST /v1/admin/applications/{id}/reevaluate", admin(http.HandlerFunc(h.reevaluate)))
	mux.Handle("PUT /v1/admin/applications/{id}/status", admin(http.HandlerFunc(h.updateStatus)))
	mux.Handle("POST /v1/admin/applications/{id}/link-sent", admin(http.HandlerFunc(h.setLinkSent)))
	mux.Handle("POST /v1/admin/applications/{id}/trash", admin(http.HandlerFunc(h.trash)))

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(mux)
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return middleware.Logging(logger)(mux)
}
