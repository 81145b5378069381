// Package pages serves the static About and Blog pages.
package pages

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/userdir/internal/banner"
	"github.com/noah-isme/userdir/internal/shared"
	"github.com/noah-isme/userdir/internal/view"
)

// Handler renders pages that do not touch the user collection. They still
// show the banner and carry a CSRF token for its clear button.
type Handler struct {
	logger        *slog.Logger
	notifications *banner.Store
	templates     *view.Engine
	csrf          *shared.CSRFManager
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, notifications *banner.Store, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, notifications: notifications, templates: templates, csrf: csrf}
}

// MountRoutes registers the static pages.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/about", h.showAbout)
	r.Get("/blog", h.showBlog)
}

func (h *Handler) showAbout(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/about.html", "About", nil)
}

func (h *Handler) showBlog(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/blog.html", "Blog", map[string]any{"Posts": Posts})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Banner:      h.notifications.Current(),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, http.StatusOK, name, viewData); err != nil {
		h.logger.Error("render template", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
