package billing

import (
	"errors"
	"time"

	"github.com/stackfield/crmd/internal/store"
)

var (
	ErrNotFound      = errors.New("billing record not found")
	ErrEmptyLineItem = errors.New("line item needs a description and positive quantity")
)

// LineItem is a billable row. Amounts are in cents.
type LineItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

// Payment is money received against an invoice.
type Payment struct {
	ID     string    `json:"id"`
	Amount int64     `json:"amount"`
	Method string    `json:"method,omitempty"`
	PaidAt time.Time `json:"paid_at"`
}

type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "Draft"
	InvoiceSent          InvoiceStatus = "Sent"
	InvoicePartiallyPaid InvoiceStatus = "PartiallyPaid"
	InvoicePaid          InvoiceStatus = "Paid"
	InvoiceOverdue       InvoiceStatus = "Overdue"
)

type EstimateStatus string

const (
	EstimateDraft    EstimateStatus = "Draft"
	EstimateSent     EstimateStatus = "Sent"
	EstimateAccepted EstimateStatus = "Accepted"
	EstimateDeclined EstimateStatus = "Declined"
	EstimateExpired  EstimateStatus = "Expired"
)

type Invoice struct {
	ID        string
	TenantID  string
	Number    string
	ContactID string
	IssueDate time.Time
	DueDate   *time.Time

	LineItems   []LineItem
	Payments    []Payment
	TotalAmount int64
	Status      InvoiceStatus

	SyncStatus store.SyncStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

type Estimate struct {
	ID         string
	TenantID   string
	Number     string
	ContactID  string
	ExpiryDate *time.Time

	LineItems   []LineItem
	TotalAmount int64
	Status      EstimateStatus

	SyncStatus store.SyncStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Total sums quantity times unit price over the line items.
func Total(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Quantity * item.UnitPrice
	}

	return total
}

// PaymentsTotal sums the received payments.
func PaymentsTotal(payments []Payment) int64 {
	var total int64
	for _, p := range payments {
		total += p.Amount
	}

	return total
}

// DeriveStatus applies the auto-transition rule after a payment or line-item
// change: due <= 0 means Paid, a partial balance means PartiallyPaid, and
// anything else keeps the previous status (a Sent invoice with no payments
// stays Sent).
func DeriveStatus(prev InvoiceStatus, total, paid int64) InvoiceStatus {
	due := total - paid

	switch {
	case due <= 0 && (paid > 0 || total > 0):
		return InvoicePaid
	case due > 0 && due < total:
		return InvoicePartiallyPaid
	default:
		return prev
	}
}

// AmountDue is the outstanding balance.
func (i *Invoice) AmountDue() int64 {
	return i.TotalAmount - PaymentsTotal(i.Payments)
}

// Recalculate recomputes the derived total and status. Call it after any
// line-item or payment mutation; it is idempotent.
func (i *Invoice) Recalculate() {
	i.TotalAmount = Total(i.LineItems)
	i.Status = DeriveStatus(i.Status, i.TotalAmount, PaymentsTotal(i.Payments))
}

// Recalculate recomputes the estimate total.
func (e *Estimate) Recalculate() {
	e.TotalAmount = Total(e.LineItems)
}

func validateItems(items []LineItem) error {
	for _, item := range items {
		if item.Description == "" || item.Quantity <= 0 {
			return ErrEmptyLineItem
		}
	}

	return nil
}
