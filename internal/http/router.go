package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"research-portfolio/internal/analysis"
	"research-portfolio/internal/handlers"
	"research-portfolio/internal/metrics"
	"research-portfolio/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Papers      service.PaperService
	Sync        service.SyncService
	Reanalyze   service.ReanalyzeService
	Maintenance service.MaintenanceService
	Imports     service.ImportService
	Files       service.FileService
	QA          service.QAService
	Auth        service.AuthService
	Profile     *analysis.Profile
	Health      *handlers.HealthHandler
	// Metrics is optional; nil disables /metrics and request instrumentation.
	Metrics *metrics.Metrics
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(Instrument(deps.Metrics))
	}
	r.Use(CORS)

	admin := RequireAdmin(deps.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/papers", handlers.NewPapersHandler(deps.Papers))
		r.Method(http.MethodGet, "/stats", handlers.NewStatsHandler(deps.Papers))
		r.Method(http.MethodGet, "/site", handlers.NewSiteHandler(deps.Profile))
		r.Method(http.MethodPost, "/add-paper", handlers.NewAddPaperHandler(deps.Papers))
		r.Method(http.MethodPost, "/update-paper", handlers.NewUpdatePaperHandler(deps.Papers))
		r.Handle("/paper-themes", handlers.NewPaperThemesHandler(deps.Papers))

		r.Method(http.MethodGet, "/check-new-papers", handlers.NewCheckNewHandler(deps.Sync))
		r.Method(http.MethodPost, "/admin-auth", handlers.NewAdminAuthHandler(deps.Auth))
		r.Method(http.MethodPost, "/research-qa", handlers.NewQAHandler(deps.QA))

		r.Method(http.MethodPost, "/get-pdf-link", handlers.NewPDFLinkHandler(deps.Files))
		r.Handle("/link-pdf", handlers.NewLinkPDFHandler(deps.Files))
		r.Method(http.MethodGet, "/suggest-filenames", handlers.NewSuggestHandler(deps.Files))

		r.Method(http.MethodGet, "/health", deps.Health)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Method(http.MethodPost, "/sync-dropbox", handlers.NewSyncHandler(deps.Sync))
			r.Method(http.MethodPost, "/reanalyze-papers", handlers.NewReanalyzeBatchHandler(deps.Reanalyze))
			r.Method(http.MethodPost, "/reanalyze-paper", handlers.NewReanalyzeOneHandler(deps.Reanalyze))
			r.Method(http.MethodPost, "/consolidate-themes-v2", handlers.NewConsolidateHandler(deps.Maintenance))
			r.Method(http.MethodPost, "/import-csv", handlers.NewImportHandler(deps.Imports))
			r.Method(http.MethodPost, "/rename-pdf", handlers.NewRenamePDFHandler(deps.Files))
			r.Method(http.MethodPost, "/fix-arrays", handlers.NewFixArraysHandler(deps.Maintenance))
		})
	})

	r.Method(http.MethodGet, "/health", deps.Health)
	r.Method(http.MethodGet, "/papers/{id}", handlers.NewPaperPageHandler(deps.Papers))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	return r
}
