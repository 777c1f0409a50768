package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/dashboard"
)

var validate = validator.New()

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.board)
	r.Get("/catalog", h.catalog)
	r.Get("/render", h.render)
	r.Post("/widgets", h.addWidget)
	r.Delete("/widgets/{id}", h.removeWidget)
	r.Put("/layout", h.saveLayout)
}

type boardResponse struct {
	Widgets []string         `json:"widgets"`
	Layout  []dashboard.Cell `json:"layout"`
}

func toBoardResponse(b *dashboard.Board) boardResponse {
	return boardResponse{Widgets: b.Widgets, Layout: b.ActiveCells()}
}

func (h *Handler) board(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Board(r.Context(), auth.TenantID(r.Context()))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toBoardResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type catalogEntryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Component   string `json:"component"`
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.Catalog()

	resp := make([]catalogEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = catalogEntryResponse{ID: e.ID, Name: e.Name, Description: e.Description, Component: e.Component}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type renderedWidgetResponse struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Cell dashboard.Cell `json:"cell"`
	Body string         `json:"body"`
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request) {
	bp := dashboard.Breakpoints[0]

	if name := r.URL.Query().Get("breakpoint"); name != "" {
		for _, b := range dashboard.Breakpoints {
			if b.Name == name {
				bp = b
				break
			}
		}
	}

	rendered, err := h.svc.Render(r.Context(), auth.TenantID(r.Context()), bp)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]renderedWidgetResponse, len(rendered))
	for i, rw := range rendered {
		resp[i] = renderedWidgetResponse{
			ID:   rw.Entry.ID,
			Name: rw.Entry.Name,
			Cell: rw.Cell,
			Body: rw.Body,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addWidgetRequest struct {
	WidgetID string `json:"widget_id" validate:"required"`
}

func (h *Handler) addWidget(w http.ResponseWriter, r *http.Request) {
	var req addWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.AddWidget(r.Context(), auth.TenantID(r.Context()), req.WidgetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toBoardResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) removeWidget(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.RemoveWidget(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toBoardResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type saveLayoutRequest struct {
	Layout []dashboard.Cell `json:"layout" validate:"required"`
}

func (h *Handler) saveLayout(w http.ResponseWriter, r *http.Request) {
	var req saveLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.SaveLayout(r.Context(), auth.TenantID(r.Context()), req.Layout)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toBoardResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
