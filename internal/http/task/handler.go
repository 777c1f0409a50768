package task

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/task"
)

var validate = validator.New()

type Handler struct {
	svc *task.Service
}

func NewHandler(svc *task.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/overdue", h.overdue)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type taskResponse struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Assignee   string          `json:"assignee,omitempty"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	Status     task.Status     `json:"status"`
	Priority   task.Priority   `json:"priority,omitempty"`
	ParentKind task.ParentKind `json:"parent_kind"`
	ParentID   string          `json:"parent_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(t *task.Task) taskResponse {
	return taskResponse{
		ID:         t.ID,
		Title:      t.Title,
		Assignee:   t.Assignee,
		DueDate:    t.DueDate,
		Status:     t.Status,
		Priority:   t.Priority,
		ParentKind: t.ParentKind,
		ParentID:   t.ParentID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func toResponseList(tasks []*task.Task) []taskResponse {
	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toResponse(t)
	}

	return resp
}

type createTaskRequest struct {
	Title      string          `json:"title" validate:"required"`
	Assignee   string          `json:"assignee"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	Priority   task.Priority   `json:"priority"`
	ParentKind task.ParentKind `json:"parent_kind"`
	ParentID   string          `json:"parent_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.Create(r.Context(), auth.TenantID(r.Context()), task.CreateParams{
		Title:      req.Title,
		Assignee:   req.Assignee,
		DueDate:    req.DueDate,
		Priority:   req.Priority,
		ParentKind: req.ParentKind,
		ParentID:   req.ParentID,
	})
	if err != nil {
		if errors.Is(err, task.ErrUnknownKind) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := task.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(task.Status(s))
	}

	if s := r.URL.Query().Get("assignee"); s != "" {
		filter.Assignee = new(s)
	}

	if s := r.URL.Query().Get("parent_kind"); s != "" {
		filter.ParentKind = new(task.ParentKind(s))
	}

	if s := r.URL.Query().Get("parent_id"); s != "" {
		filter.ParentID = new(s)
	}

	tasks, err := h.svc.List(r.Context(), auth.TenantID(r.Context()), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(tasks)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) overdue(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.Overdue(r.Context(), auth.TenantID(r.Context()), time.Now())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(tasks)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status task.Status `json:"status" validate:"required"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.UpdateStatus(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
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
