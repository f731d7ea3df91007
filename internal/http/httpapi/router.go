package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"donationrelay/internal/http/handlers"
	"donationrelay/internal/infra"
	"donationrelay/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Logger(logger),
		chimw.Recoverer,
		middleware.SecureHeaders,
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow, cfg.TrustProxy),
		middleware.BodyLimit(middleware.DefaultBodyLimit),
	)

	r.Get("/healthz", app.Health)
	r.Post("/api/donate", app.Donate)

	return r
}
