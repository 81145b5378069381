package userapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/userdir/internal/platform/httpx"
	"github.com/noah-isme/userdir/internal/users"
)

// Handler exposes Store over the users REST contract.
type Handler struct {
	logger    *slog.Logger
	store     Store
	validator *validator.Validate
}

type userPayload struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

func (p userPayload) draft() users.Draft {
	return users.Draft{Name: p.Name, Username: p.Username, Email: p.Email}
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, store Store) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, store: store, validator: validator.New()}
}

// MountRoutes registers the users resource.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/users", h.list)
	r.Post("/users", h.create)
	r.Get("/users/{id}", h.get)
	r.Put("/users/{id}", h.update)
	r.Delete("/users/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	user, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	payload, err := h.decode(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	user, err := h.store.Create(r.Context(), payload.draft())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	payload, err := h.decode(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	user, err := h.store.Update(r.Context(), payload.draft().WithID(id))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct{}{})
}

func (h *Handler) decode(r *http.Request) (userPayload, error) {
	var payload userPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		return payload, fmt.Errorf("decode body: %v: %w", err, httpx.ErrValidation)
	}
	if err := h.validator.Struct(payload); err != nil {
		return payload, fmt.Errorf("%v: %w", err, httpx.ErrValidation)
	}
	return payload, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("users api request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	httpx.RespondError(w, err)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id: %w", httpx.ErrNotFound)
	}
	return id, nil
}
