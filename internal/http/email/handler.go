package email

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/email"
)

var validate = validator.New()

type Handler struct {
	svc *email.Service
}

func NewHandler(svc *email.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/templates", func(r chi.Router) {
		r.Post("/", h.createTemplate)
		r.Get("/", h.listTemplates)
		r.Get("/{id}", h.getTemplate)
		r.Patch("/{id}", h.updateTemplate)
		r.Delete("/{id}", h.deleteTemplate)
	})

	r.Post("/send", h.send)
}

type templateResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	Placeholders []string  `json:"placeholders,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toResponse(t *email.Template) templateResponse {
	return templateResponse{
		ID:           t.ID,
		Name:         t.Name,
		Subject:      t.Subject,
		Body:         t.Body,
		Placeholders: t.Placeholders(),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type templateRequest struct {
	Name    string `json:"name" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body"`
}

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.CreateTemplate(r.Context(), auth.TenantID(r.Context()), email.TemplateParams{
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.ListTemplates(r.Context(), auth.TenantID(r.Context()))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]templateResponse, len(templates))
	for i, t := range templates {
		resp[i] = toResponse(t)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetTemplate(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, email.ErrNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
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

func (h *Handler) updateTemplate(w http.ResponseWriter, r *http.Request) {
	var req email.TemplateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.UpdateTemplate(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, email.ErrNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
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

func (h *Handler) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTemplate(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type sendRequest struct {
	To         string            `json:"to" validate:"required,email"`
	Subject    string            `json:"subject"`
	HTML       string            `json:"html"`
	TemplateID string            `json:"template_id"`
	Values     map[string]string `json:"values"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tenantID := auth.TenantID(r.Context())

	var err error

	if req.TemplateID != "" {
		err = h.svc.SendTemplated(r.Context(), tenantID, req.TemplateID, req.To, req.Values)
	} else {
		if req.Subject == "" {
			http.Error(w, "subject is required without a template", http.StatusBadRequest)
			return
		}

		err = h.svc.Send(r.Context(), req.To, req.Subject, req.HTML)
	}

	if err != nil {
		if errors.Is(err, email.ErrNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadGateway)

		return
	}

	w.WriteHeader(http.StatusAccepted)
}
