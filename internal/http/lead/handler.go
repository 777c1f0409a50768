package lead

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/lead"
)

var validate = validator.New()

type Handler struct {
	svc *lead.Service
}

func NewHandler(svc *lead.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Patch("/{id}/status", h.updateStatus)
	r.Post("/{id}/convert", h.convert)
	r.Delete("/{id}", h.delete)
}

type createLeadRequest struct {
	Name    string `json:"name" validate:"required"`
	Company string `json:"company"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Score   int    `json:"score" validate:"gte=0,lte=100"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.Create(r.Context(), auth.TenantID(r.Context()), lead.CreateParams{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Score:   req.Score,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(l)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := lead.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(lead.Status(s))
	}

	if s := r.URL.Query().Get("q"); s != "" {
		filter.Query = new(s)
	}

	if s := r.URL.Query().Get("min_score"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 100 {
			http.Error(w, "min_score must be between 0 and 100", http.StatusBadRequest)
			return
		}

		filter.MinScore = new(n)
	}

	leads, err := h.svc.List(r.Context(), auth.TenantID(r.Context()), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(leads)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, lead.ErrNotFound) {
			http.Error(w, "lead not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(l)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateLeadRequest struct {
	Name    *string `json:"name,omitempty"`
	Company *string `json:"company,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Score   *int    `json:"score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.Get(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, lead.ErrNotFound) {
			http.Error(w, "lead not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		l.Name = *req.Name
	}

	if req.Company != nil {
		l.Company = *req.Company
	}

	if req.Email != nil {
		l.Email = *req.Email
	}

	if req.Phone != nil {
		l.Phone = *req.Phone
	}

	if req.Score != nil {
		l.Score = *req.Score
	}

	if err := h.svc.Update(r.Context(), l); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(l)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status lead.Status `json:"status" validate:"required"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.UpdateStatus(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, lead.ErrNotFound):
			http.Error(w, "lead not found", http.StatusNotFound)
		case errors.Is(err, lead.ErrTerminalStatus):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(l)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type convertRequest struct {
	CreateOpportunity bool   `json:"create_opportunity"`
	OpportunityTitle  string `json:"opportunity_title"`
	OpportunityValue  int64  `json:"opportunity_value" validate:"gte=0"`
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.Convert(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), lead.ConvertOptions{
		CreateOpportunity: req.CreateOpportunity,
		OpportunityTitle:  req.OpportunityTitle,
		OpportunityValue:  req.OpportunityValue,
	})
	if err != nil {
		switch {
		case errors.Is(err, lead.ErrNotFound):
			http.Error(w, "lead not found", http.StatusNotFound)
		case errors.Is(err, lead.ErrAlreadyConverted), errors.Is(err, lead.ErrTerminalStatus):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toConvertResponse(result)); err != nil {
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
