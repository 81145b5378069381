package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/noah-isme/userdir/internal/directory"
	"github.com/noah-isme/userdir/internal/observability"
	"github.com/noah-isme/userdir/internal/pages"
	"github.com/noah-isme/userdir/internal/shared"
	"github.com/noah-isme/userdir/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *shared.SessionManager
	CSRFManager      *shared.CSRFManager
	DirectoryHandler *directory.Handler
	PagesHandler     *pages.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with the directory defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	// Static assets and probes skip sessions and CSRF.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         params.Logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			Metrics:        params.Metrics,
		}) {
			r.Use(mw)
		}
		r.Use(chimw.Logger)

		params.DirectoryHandler.MountRoutes(r)
		if params.PagesHandler != nil {
			params.PagesHandler.MountRoutes(r)
		}
	})

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
// Assets are cached for one hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
