package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"symptom-service/internal/config"
	"symptom-service/internal/diagnosis"
	dxHnd "symptom-service/internal/diagnosis/handler"
	"symptom-service/internal/middleware"
	"symptom-service/server/http/handlers"
)

func NewRouter(cfg config.Config, eng *diagnosis.Engine, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health)

	diagnose := dxHnd.Diagnose(cfg, eng, logger)
	r.Get("/diagnose", diagnose)
	r.Post("/diagnose", diagnose)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", dxHnd.Catalog(eng, logger))
		r.Post("/lint", dxHnd.LintCatalog(cfg, logger))
	})

	return r
}
