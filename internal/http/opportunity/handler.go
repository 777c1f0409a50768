package opportunity

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/opportunity"
)

var validate = validator.New()

type Handler struct {
	svc *opportunity.Service
}

func NewHandler(svc *opportunity.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/stage", h.moveStage)
	r.Delete("/{id}", h.delete)
}

type opportunityResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	ContactID string            `json:"contact_id,omitempty"`
	Value     int64             `json:"value"`
	Stage     opportunity.Stage `json:"stage"`
	CloseDate *time.Time        `json:"close_date,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty"`
}

func toResponse(o *opportunity.Opportunity) opportunityResponse {
	return opportunityResponse{
		ID:        o.ID,
		Title:     o.Title,
		ContactID: o.ContactID,
		Value:     o.Value,
		Stage:     o.Stage,
		CloseDate: o.CloseDate,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

type createOpportunityRequest struct {
	Title     string            `json:"title" validate:"required"`
	ContactID string            `json:"contact_id"`
	Value     int64             `json:"value" validate:"gte=0"`
	Stage     opportunity.Stage `json:"stage"`
	CloseDate *time.Time        `json:"close_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.svc.Create(r.Context(), auth.TenantID(r.Context()), opportunity.CreateParams{
		Title:     req.Title,
		ContactID: req.ContactID,
		Value:     req.Value,
		Stage:     req.Stage,
		CloseDate: req.CloseDate,
	})
	if err != nil {
		if errors.Is(err, opportunity.ErrUnknownStage) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := opportunity.ListFilter{}

	if s := r.URL.Query().Get("stage"); s != "" {
		filter.Stage = new(opportunity.Stage(s))
	}

	if s := r.URL.Query().Get("contact_id"); s != "" {
		filter.ContactID = new(s)
	}

	opps, err := h.svc.List(r.Context(), auth.TenantID(r.Context()), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]opportunityResponse, len(opps))
	for i, o := range opps {
		resp[i] = toResponse(o)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.PipelineSummary(r.Context(), auth.TenantID(r.Context()))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, opportunity.ErrNotFound) {
			http.Error(w, "opportunity not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type moveStageRequest struct {
	Stage opportunity.Stage `json:"stage" validate:"required"`
}

func (h *Handler) moveStage(w http.ResponseWriter, r *http.Request) {
	var req moveStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.svc.MoveStage(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), req.Stage)
	if err != nil {
		switch {
		case errors.Is(err, opportunity.ErrNotFound):
			http.Error(w, "opportunity not found", http.StatusNotFound)
		case errors.Is(err, opportunity.ErrUnknownStage):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, opportunity.ErrClosedStage):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
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
