package directory

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/userdir/internal/banner"
	"github.com/noah-isme/userdir/internal/shared"
	"github.com/noah-isme/userdir/internal/users"
	"github.com/noah-isme/userdir/internal/view"
)

// Handler serves the home page and the user mutations behind its forms.
type Handler struct {
	logger        *slog.Logger
	controller    *Controller
	notifications *banner.Store
	templates     *view.Engine
	csrf          *shared.CSRFManager
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, controller *Controller, notifications *banner.Store, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, controller: controller, notifications: notifications, templates: templates, csrf: csrf}
}

// MountRoutes registers home page and user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showDirectory)
	r.Post("/users", h.createUser)
	r.Post("/users/refresh", h.refresh)
	r.Post("/users/{id}", h.updateUser)
	r.Post("/users/{id}/cancel", h.cancelEdit)
	r.Post("/users/{id}/delete", h.deleteUser)
	r.Post("/banner/clear", h.clearBanner)
}

type pageData struct {
	Columns []string
	Users   []users.User
	NewUser *CreateForm
	Editing *EditForm
}

func (h *Handler) showDirectory(w http.ResponseWriter, r *http.Request) {
	list := NewListView(h.controller.Users())
	if raw := r.URL.Query().Get("edit"); raw != "" {
		user, ok := h.lookup(raw)
		if !ok {
			h.render(w, r, h.buildPage(list, &CreateForm{}), http.StatusNotFound)
			return
		}
		list.Edit(user)
	}
	h.render(w, r, h.buildPage(list, &CreateForm{}), http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := &CreateForm{
		Name:     r.PostFormValue("name"),
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		OnSubmit: func(draft users.Draft) {
			h.controller.Create(backendContext(r), draft)
		},
	}
	if !form.Submit() {
		h.render(w, r, h.buildPage(NewListView(h.controller.Users()), form), http.StatusUnprocessableEntity)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	list, form, ok := h.editSession(w, r)
	if !ok {
		return
	}
	list.OnUpdate = func(user users.User) {
		h.controller.Update(backendContext(r), user)
	}
	form.Name = r.PostFormValue("name")
	form.Username = r.PostFormValue("username")
	form.Email = r.PostFormValue("email")
	form.Submit()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) cancelEdit(w http.ResponseWriter, r *http.Request) {
	_, form, ok := h.editSession(w, r)
	if !ok {
		return
	}
	if r.PostFormValue("source") == "backdrop" {
		form.Backdrop()
	} else {
		form.Cancel()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookup(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	list := NewListView(h.controller.Users())
	list.OnDelete = func(user users.User) {
		h.controller.Delete(backendContext(r), user)
	}
	list.Delete(user)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	h.controller.Load(backendContext(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// backendContext detaches backend calls from request cancellation. Once a
// mutation is sent the collection must reflect its outcome even if the
// request times out or the browser goes away.
func backendContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (h *Handler) clearBanner(w http.ResponseWriter, r *http.Request) {
	h.notifications.Clear()
	http.Redirect(w, r, safeReturnPath(r.PostFormValue("return_to")), http.StatusSeeOther)
}

// editSession opens the edit modal for the record addressed by the URL and
// returns the modal's form.
func (h *Handler) editSession(w http.ResponseWriter, r *http.Request) (*ListView, *EditForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return nil, nil, false
	}
	user, ok := h.lookup(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return nil, nil, false
	}
	list := NewListView(h.controller.Users())
	list.Edit(user)
	return list, list.EditForm(), true
}

func (h *Handler) lookup(raw string) (users.User, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return users.User{}, false
	}
	return h.controller.Find(id)
}

func (h *Handler) buildPage(list *ListView, form *CreateForm) pageData {
	data := pageData{Columns: Columns, Users: list.Users, NewUser: form}
	if list.ShowEditModal() {
		data.Editing = list.EditForm()
	}
	return data
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data pageData, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	viewData := view.TemplateData{
		Title:       "Home",
		CSRFToken:   csrfToken,
		Banner:      h.notifications.Current(),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, status, "pages/home.html", viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func safeReturnPath(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.Contains(path, "\\") {
		return "/"
	}
	return path
}
