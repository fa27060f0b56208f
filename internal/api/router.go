package api

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"player-api/internal/common/config"
	"player-api/internal/common/logger"
)

// NewRouter wires the middleware chain and the routes.
func NewRouter(h *Handler, corsCfg config.CORSConfig, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(Instrument(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(corsCfg)))

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/player", func(r chi.Router) {
		r.Post("/summary", h.PlayerSummary)
		r.Post("/compare", h.ComparePlayers)
		r.Post("/similar", h.SimilarPlayers)
	})

	return r
}

func corsOptions(cfg config.CORSConfig) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if cfg.AllowCredentials && slices.Contains(cfg.AllowedOrigins, "*") {
		// any origin, echoed back instead of "*"
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	}
	return opts
}
