package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"furnihome/go_backend/internal/app/config"
	"furnihome/go_backend/internal/app/http/handlers"
	"furnihome/go_backend/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	r.Get("/data/preview", h.DataPreview)
	r.Get("/search", h.Rec.HandleSearch)
	r.Post("/generate/description", h.GenerateDescription)
	r.Post("/recommend/chat", h.Rec.HandleChat)
	r.Get("/analytics/summary", h.AnalyticsSummary)

	// Full reindex is an operational action; guard it when a token is set.
	if cfg.InternalToken != "" {
		r.With(middleware.InternalAuth(cfg.InternalToken)).Get("/embed/index", h.Rec.HandleIndex)
	} else {
		r.Get("/embed/index", h.Rec.HandleIndex)
	}

	return r
}
