package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/importer"
	"github.com/stackfield/crmd/internal/lead"
)

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importedLeadResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Score int    `json:"score"`
}

type conflictResponse struct {
	IncomingName  string `json:"incoming_name"`
	IncomingEmail string `json:"incoming_email"`
	ExistingID    string `json:"existing_id"`
	ExistingName  string `json:"existing_name"`
}

type importResponse struct {
	Imported  []importedLeadResponse `json:"imported"`
	Conflicts []conflictResponse     `json:"conflicts,omitempty"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), auth.TenantID(r.Context()), format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toResponse(result *lead.ImportResult) importResponse {
	resp := importResponse{
		Imported: make([]importedLeadResponse, 0, len(result.Imported)),
	}

	for _, l := range result.Imported {
		resp.Imported = append(resp.Imported, importedLeadResponse{
			ID:    l.ID,
			Name:  l.Name,
			Email: l.Email,
			Score: l.Score,
		})
	}

	for _, c := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictResponse{
			IncomingName:  c.Incoming.Name,
			IncomingEmail: c.Incoming.Email,
			ExistingID:    c.Existing.ID,
			ExistingName:  c.Existing.Name,
		})
	}

	return resp
}
