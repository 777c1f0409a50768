package media

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/media"
)

var validate = validator.New()

type Handler struct {
	svc *media.Service
}

func NewHandler(svc *media.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/describe", h.describe)
	r.Delete("/{id}", h.delete)
}

type fileResponse struct {
	ID          string         `json:"id"`
	URL         string         `json:"url"`
	Type        media.FileType `json:"type"`
	Category    string         `json:"category,omitempty"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func toResponse(f *media.File) fileResponse {
	return fileResponse{
		ID:          f.ID,
		URL:         f.URL,
		Type:        f.Type,
		Category:    f.Category,
		Description: f.Description,
		Tags:        f.Tags,
		Notes:       f.Notes,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

type createFileRequest struct {
	URL      string         `json:"url" validate:"required,url"`
	Type     media.FileType `json:"type" validate:"omitempty,oneof=image video document"`
	Category string         `json:"category"`
	Notes    string         `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := h.svc.Create(r.Context(), auth.TenantID(r.Context()), media.CreateParams{
		URL:      req.URL,
		Type:     req.Type,
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(f)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := media.Filter{}

	if s := r.URL.Query().Get("type"); s != "" {
		filter.Type = new(media.FileType(s))
	}

	if s := r.URL.Query().Get("category"); s != "" {
		filter.Category = new(s)
	}

	files, err := h.svc.List(r.Context(), auth.TenantID(r.Context()), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]fileResponse, len(files))
	for i, f := range files {
		resp[i] = toResponse(f)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.Get(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(f)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateFileRequest struct {
	Category *string `json:"category,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := h.svc.Update(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), media.UpdateParams{
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(f)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type describeRequest struct {
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
}

func (h *Handler) describe(w http.ResponseWriter, r *http.Request) {
	var req describeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := h.svc.Describe(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), req.Description, req.Tags)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(f)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
