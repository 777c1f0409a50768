package billing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stackfield/crmd/internal/auth"
	"github.com/stackfield/crmd/internal/billing"
)

var validate = validator.New()

type Handler struct {
	svc *billing.Service
}

func NewHandler(svc *billing.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/invoices", func(r chi.Router) {
		r.Post("/", h.createInvoice)
		r.Get("/", h.listInvoices)
		r.Get("/{id}", h.getInvoice)
		r.Put("/{id}/items", h.setLineItems)
		r.Post("/{id}/send", h.markSent)
		r.Post("/{id}/payments", h.recordPayment)
		r.Delete("/{id}", h.deleteInvoice)
	})

	r.Route("/estimates", func(r chi.Router) {
		r.Post("/", h.createEstimate)
		r.Get("/", h.listEstimates)
		r.Get("/{id}", h.getEstimate)
		r.Patch("/{id}/status", h.updateEstimateStatus)
		r.Post("/{id}/promote", h.promoteEstimate)
		r.Delete("/{id}", h.deleteEstimate)
	})

	r.Get("/revenue", h.revenue)
}

type lineItemPayload struct {
	Description string `json:"description" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"gt=0"`
	UnitPrice   int64  `json:"unit_price" validate:"gte=0"`
}

func toLineItems(items []lineItemPayload) []billing.LineItem {
	out := make([]billing.LineItem, len(items))
	for i, it := range items {
		out[i] = billing.LineItem{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}

	return out
}

type createInvoiceRequest struct {
	Number    string            `json:"number" validate:"required"`
	ContactID string            `json:"contact_id"`
	IssueDate time.Time         `json:"issue_date"`
	DueDate   *time.Time        `json:"due_date,omitempty"`
	LineItems []lineItemPayload `json:"line_items" validate:"dive"`
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.IssueDate.IsZero() {
		req.IssueDate = time.Now()
	}

	inv, err := h.svc.CreateInvoice(r.Context(), auth.TenantID(r.Context()), billing.InvoiceParams{
		Number:    req.Number,
		ContactID: req.ContactID,
		IssueDate: req.IssueDate,
		DueDate:   req.DueDate,
		LineItems: toLineItems(req.LineItems),
	})
	if err != nil {
		if errors.Is(err, billing.ErrEmptyLineItem) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toInvoiceResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	filter := billing.InvoiceFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(billing.InvoiceStatus(s))
	}

	if s := r.URL.Query().Get("contact_id"); s != "" {
		filter.ContactID = new(s)
	}

	invoices, err := h.svc.ListInvoices(r.Context(), auth.TenantID(r.Context()), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toInvoiceResponse(inv)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.GetInvoice(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toInvoiceResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setLineItemsRequest struct {
	LineItems []lineItemPayload `json:"line_items" validate:"required,dive"`
}

func (h *Handler) setLineItems(w http.ResponseWriter, r *http.Request) {
	var req setLineItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.SetLineItems(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), toLineItems(req.LineItems))
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrNotFound):
			http.Error(w, "invoice not found", http.StatusNotFound)
		case errors.Is(err, billing.ErrEmptyLineItem):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toInvoiceResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) markSent(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.MarkSent(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toInvoiceResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// recordPaymentRequest accepts the amount either as integer cents or as a
// display string like "125.00".
type recordPaymentRequest struct {
	Amount       int64  `json:"amount" validate:"gte=0"`
	AmountString string `json:"amount_string"`
	Method       string `json:"method"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount := req.Amount

	if req.AmountString != "" {
		parsed, err := billing.ParseMoney(req.AmountString)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		amount = parsed
	}

	if amount <= 0 {
		http.Error(w, "payment amount must be positive", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.RecordPayment(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), amount, req.Method)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toInvoiceResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteInvoice(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteEstimate(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEstimate(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createEstimateRequest struct {
	Number     string            `json:"number" validate:"required"`
	ContactID  string            `json:"contact_id"`
	ExpiryDate *time.Time        `json:"expiry_date,omitempty"`
	LineItems  []lineItemPayload `json:"line_items" validate:"dive"`
}

func (h *Handler) createEstimate(w http.ResponseWriter, r *http.Request) {
	var req createEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	est, err := h.svc.CreateEstimate(r.Context(), auth.TenantID(r.Context()), billing.EstimateParams{
		Number:     req.Number,
		ContactID:  req.ContactID,
		ExpiryDate: req.ExpiryDate,
		LineItems:  toLineItems(req.LineItems),
	})
	if err != nil {
		if errors.Is(err, billing.ErrEmptyLineItem) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toEstimateResponse(est)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listEstimates(w http.ResponseWriter, r *http.Request) {
	estimates, err := h.svc.ListEstimates(r.Context(), auth.TenantID(r.Context()))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]estimateResponse, len(estimates))
	for i, est := range estimates {
		resp[i] = toEstimateResponse(est)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getEstimate(w http.ResponseWriter, r *http.Request) {
	est, err := h.svc.GetEstimate(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			http.Error(w, "estimate not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toEstimateResponse(est)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateEstimateStatusRequest struct {
	Status billing.EstimateStatus `json:"status" validate:"required"`
}

func (h *Handler) updateEstimateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateEstimateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	est, err := h.svc.UpdateEstimateStatus(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			http.Error(w, "estimate not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toEstimateResponse(est)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type promoteEstimateRequest struct {
	InvoiceNumber string `json:"invoice_number" validate:"required"`
}

func (h *Handler) promoteEstimate(w http.ResponseWriter, r *http.Request) {
	var req promoteEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.PromoteEstimate(r.Context(), auth.TenantID(r.Context()), chi.URLParam(r, "id"), req.InvoiceNumber)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			http.Error(w, "estimate not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toInvoiceResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Revenue(r.Context(), auth.TenantID(r.Context()))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
