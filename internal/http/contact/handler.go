package contact

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/contact"
)

var validate = validator.New()

type Handler struct {
	svc *contact.Service
}

func NewHandler(svc *contact.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type contactResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Company   string     `json:"company,omitempty"`
	Title     string     `json:"title,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(c *contact.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Company:   c.Company,
		Title:     c.Title,
		Avatar:    c.Avatar,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type createContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Company string `json:"company"`
	Title   string `json:"title"`
	Avatar  string `json:"avatar"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), auth.TenantID(r.Context()), contact.CreateParams{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Title:   req.Title,
		Avatar:  req.Avatar,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.List(r.Context(), auth.TenantID(r.Context()))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]contactResponse, len(contacts))
	for i, c := range contacts {
		resp[i] = toResponse(c)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateContactRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Company *string `json:"company,omitempty"`
	Title   *string `json:"title,omitempty"`
	Avatar  *string `json:"avatar,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}

	if req.Email != nil {
		c.Email = *req.Email
	}

	if req.Company != nil {
		c.Company = *req.Company
	}

	if req.Title != nil {
		c.Title = *req.Title
	}

	if req.Avatar != nil {
		c.Avatar = *req.Avatar
	}

	if req.Phone != nil {
		c.Phone = *req.Phone
	}

	if req.Address != nil {
		c.Address = *req.Address
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
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
