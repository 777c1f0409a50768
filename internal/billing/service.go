package billing

import (
	"context"
	"fmt"
	"time"
)

type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, tenantID, id string) (*Invoice, error)
	ListInvoices(ctx context.Context, tenantID string, filter InvoiceFilter) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, tenantID, id string) error

	CreateEstimate(ctx context.Context, est *Estimate) error
	GetEstimate(ctx context.Context, tenantID, id string) (*Estimate, error)
	ListEstimates(ctx context.Context, tenantID string) ([]*Estimate, error)
	UpdateEstimate(ctx context.Context, est *Estimate) error
	DeleteEstimate(ctx context.Context, tenantID, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type InvoiceParams struct {
	Number    string
	ContactID string
	IssueDate time.Time
	DueDate   *time.Time
	LineItems []LineItem
}

type InvoiceFilter struct {
	Status    *InvoiceStatus
	ContactID *string
}

func (s *Service) CreateInvoice(ctx context.Context, tenantID string, params InvoiceParams) (*Invoice, error) {
	if err := validateItems(params.LineItems); err != nil {
		return nil, err
	}

	inv := &Invoice{
		TenantID:  tenantID,
		Number:    params.Number,
		ContactID: params.ContactID,
		IssueDate: params.IssueDate,
		DueDate:   params.DueDate,
		LineItems: params.LineItems,
		Status:    InvoiceDraft,
	}
	inv.Recalculate()

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) GetInvoice(ctx context.Context, tenantID, id string) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, tenantID, id)
}

func (s *Service) ListInvoices(ctx context.Context, tenantID string, filter InvoiceFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, tenantID, filter)
}

// SetLineItems replaces the invoice's line items and recomputes the derived
// total and status.
func (s *Service) SetLineItems(ctx context.Context, tenantID, id string, items []LineItem) (*Invoice, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	inv, err := s.repo.GetInvoice(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	inv.LineItems = items
	inv.Recalculate()

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// MarkSent moves a draft invoice to Sent.
func (s *Service) MarkSent(ctx context.Context, tenantID, id string) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if inv.Status == InvoiceDraft {
		inv.Status = InvoiceSent
		if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

// RecordPayment appends a payment and re-derives the invoice status.
func (s *Service) RecordPayment(ctx context.Context, tenantID, id string, amount int64, method string) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	inv.Payments = append(inv.Payments, Payment{
		Amount: amount,
		Method: method,
		PaidAt: time.Now(),
	})
	inv.Recalculate()

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteInvoice(ctx, tenantID, id)
}

type EstimateParams struct {
	Number     string
	ContactID  string
	ExpiryDate *time.Time
	LineItems  []LineItem
}

func (s *Service) CreateEstimate(ctx context.Context, tenantID string, params EstimateParams) (*Estimate, error) {
	if err := validateItems(params.LineItems); err != nil {
		return nil, err
	}

	est := &Estimate{
		TenantID:   tenantID,
		Number:     params.Number,
		ContactID:  params.ContactID,
		ExpiryDate: params.ExpiryDate,
		LineItems:  params.LineItems,
		Status:     EstimateDraft,
	}
	est.Recalculate()

	if err := s.repo.CreateEstimate(ctx, est); err != nil {
		return nil, err
	}

	return est, nil
}

func (s *Service) GetEstimate(ctx context.Context, tenantID, id string) (*Estimate, error) {
	return s.repo.GetEstimate(ctx, tenantID, id)
}

func (s *Service) ListEstimates(ctx context.Context, tenantID string) ([]*Estimate, error) {
	return s.repo.ListEstimates(ctx, tenantID)
}

func (s *Service) UpdateEstimateStatus(ctx context.Context, tenantID, id string, status EstimateStatus) (*Estimate, error) {
	est, err := s.repo.GetEstimate(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	est.Status = status
	if err := s.repo.UpdateEstimate(ctx, est); err != nil {
		return nil, err
	}

	return est, nil
}

func (s *Service) DeleteEstimate(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteEstimate(ctx, tenantID, id)
}

// PromoteEstimate turns an accepted estimate into a draft invoice carrying
// the same line items. The estimate is marked Accepted if it was not yet.
func (s *Service) PromoteEstimate(ctx context.Context, tenantID, id, invoiceNumber string) (*Invoice, error) {
	est, err := s.repo.GetEstimate(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		TenantID:  tenantID,
		Number:    invoiceNumber,
		ContactID: est.ContactID,
		IssueDate: time.Now(),
		LineItems: est.LineItems,
		Status:    InvoiceDraft,
	}
	inv.Recalculate()

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("creating invoice from estimate: %w", err)
	}

	if est.Status != EstimateAccepted {
		est.Status = EstimateAccepted
		if err := s.repo.UpdateEstimate(ctx, est); err != nil {
			return nil, fmt.Errorf("marking estimate accepted: %w", err)
		}
	}

	return inv, nil
}

// RevenueSummary totals billed and collected amounts for the dashboard.
type RevenueSummary struct {
	Billed      int64
	Collected   int64
	Outstanding int64
}

func (s *Service) Revenue(ctx context.Context, tenantID string) (*RevenueSummary, error) {
	invoices, err := s.repo.ListInvoices(ctx, tenantID, InvoiceFilter{})
	if err != nil {
		return nil, err
	}

	var summary RevenueSummary

	for _, inv := range invoices {
		summary.Billed += inv.TotalAmount
		summary.Collected += PaymentsTotal(inv.Payments)
	}

	summary.Outstanding = summary.Billed - summary.Collected

	return &summary, nil
}
