package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"match-service/internal/config"
	matchHnd "match-service/internal/match/handler"
	"match-service/internal/middleware"
	"match-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.Get("/health", handlers.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	// загрузки книг
	r.Group(func(r chi.Router) {
		r.Use(middleware.LimitBytes(cfg.MaxUploadBytes()))
		r.Post("/match", matchHnd.Match(cfg, logger))
		r.Post("/sheets", matchHnd.Sheets(cfg, logger))
	})

	return r
}
