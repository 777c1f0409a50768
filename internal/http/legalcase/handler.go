package legalcase

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/legalcase"
)

var validate = validator.New()

type Handler struct {
	svc *legalcase.Service
}

func NewHandler(svc *legalcase.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Post("/{id}/notes", h.addNote)
	r.Delete("/{id}", h.delete)
}

type partyPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Counsel string `json:"counsel"`
}

func (p partyPayload) toParty() legalcase.Party {
	return legalcase.Party{Name: p.Name, Email: p.Email, Phone: p.Phone, Counsel: p.Counsel}
}

func fromParty(p legalcase.Party) partyPayload {
	return partyPayload{Name: p.Name, Email: p.Email, Phone: p.Phone, Counsel: p.Counsel}
}

type createCaseRequest struct {
	Title      string       `json:"title" validate:"required"`
	AttorneyID string       `json:"attorney_id"`
	Defendant  partyPayload `json:"defendant"`
	Opposition partyPayload `json:"opposition"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), auth.TenantID(r.Context()), legalcase.CreateParams{
		Title:      req.Title,
		AttorneyID: req.AttorneyID,
		Defendant:  req.Defendant.toParty(),
		Opposition: req.Opposition.toParty(),
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
	filter := legalcase.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(legalcase.Status(s))
	}

	if s := r.URL.Query().Get("attorney_id"); s != "" {
		filter.AttorneyID = new(s)
	}

	cases, err := h.svc.List(r.Context(), auth.TenantID(r.Context()), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]caseResponse, len(cases))
	for i, c := range cases {
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
		if errors.Is(err, legalcase.ErrNotFound) {
			http.Error(w, "case not found", http.StatusNotFound)
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

type updateStatusRequest struct {
	Status legalcase.Status `json:"status" validate:"required"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	claims := auth.FromContext(r.Context())

	c, err := h.svc.UpdateStatus(r.Context(), claims.TenantID, chi.URLParam(r, "id"), req.Status, claims.Name)
	if err != nil {
		switch {
		case errors.Is(err, legalcase.ErrNotFound):
			http.Error(w, "case not found", http.StatusNotFound)
		case errors.Is(err, legalcase.ErrUnknownStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addNoteRequest struct {
	Body string `json:"body" validate:"required"`
}

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	claims := auth.FromContext(r.Context())

	note, err := h.svc.AddNote(r.Context(), claims.TenantID, chi.URLParam(r, "id"), claims.Name, req.Body)
	if err != nil {
		if errors.Is(err, legalcase.ErrNotFound) {
			http.Error(w, "case not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toNoteResponse(*note)); err != nil {
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
