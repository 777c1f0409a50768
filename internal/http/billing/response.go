package billing

import (
	"time"

	"github.com/stackfield/crmd/internal/billing"
)

type invoiceResponse struct {
	ID          string                `json:"id"`
	Number      string                `json:"number"`
	ContactID   string                `json:"contact_id,omitempty"`
	IssueDate   time.Time             `json:"issue_date"`
	DueDate     *time.Time            `json:"due_date,omitempty"`
	LineItems   []billing.LineItem    `json:"line_items"`
	Payments    []billing.Payment     `json:"payments,omitempty"`
	TotalAmount int64                 `json:"total_amount"`
	AmountDue   int64                 `json:"amount_due"`
	Status      billing.InvoiceStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   *time.Time            `json:"updated_at,omitempty"`
}

func toInvoiceResponse(inv *billing.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		ContactID:   inv.ContactID,
		IssueDate:   inv.IssueDate,
		DueDate:     inv.DueDate,
		LineItems:   inv.LineItems,
		Payments:    inv.Payments,
		TotalAmount: inv.TotalAmount,
		AmountDue:   inv.AmountDue(),
		Status:      inv.Status,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

type estimateResponse struct {
	ID          string                 `json:"id"`
	Number      string                 `json:"number"`
	ContactID   string                 `json:"contact_id,omitempty"`
	ExpiryDate  *time.Time             `json:"expiry_date,omitempty"`
	LineItems   []billing.LineItem     `json:"line_items"`
	TotalAmount int64                  `json:"total_amount"`
	Status      billing.EstimateStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   *time.Time             `json:"updated_at,omitempty"`
}

func toEstimateResponse(est *billing.Estimate) estimateResponse {
	return estimateResponse{
		ID:          est.ID,
		Number:      est.Number,
		ContactID:   est.ContactID,
		ExpiryDate:  est.ExpiryDate,
		LineItems:   est.LineItems,
		TotalAmount: est.TotalAmount,
		Status:      est.Status,
		CreatedAt:   est.CreatedAt,
		UpdatedAt:   est.UpdatedAt,
	}
}
