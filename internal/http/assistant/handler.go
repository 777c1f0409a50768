package assistant

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stackfield/crmd/internal/assistant"
	"github.com/stackfield/crmd/internal/auth"
)

var validate = validator.New()

type Handler struct {
	svc *assistant.Service
}

func NewHandler(svc *assistant.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/chat", h.chat)
}

type turnPayload struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required"`
}

type chatRequest struct {
	Turns []turnPayload `json:"turns" validate:"required,min=1,dive"`
}

type chatResponse struct {
	Text     string `json:"text"`
	Executed string `json:"executed,omitempty"`
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	turns := make([]assistant.Turn, len(req.Turns))
	for i, t := range req.Turns {
		turns[i] = assistant.Turn{Role: t.Role, Text: t.Text}
	}

	claims := auth.FromContext(r.Context())

	reply, err := h.svc.Chat(r.Context(), claims.TenantID, claims.Name, turns)
	if err != nil {
		if errors.Is(err, assistant.ErrUnknownAction) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(chatResponse{Text: reply.Text, Executed: reply.Executed}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
