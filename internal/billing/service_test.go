package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/billing"
)

type mockRepo struct {
	invoices  map[string]*billing.Invoice
	estimates map[string]*billing.Estimate
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		invoices:  map[string]*billing.Invoice{},
		estimates: map[string]*billing.Estimate{},
	}
}

func (m *mockRepo) CreateInvoice(_ context.Context, inv *billing.Invoice) error {
	inv.ID = "inv-" + inv.Number
	m.invoices[inv.ID] = inv

	return nil
}

func (m *mockRepo) GetInvoice(_ context.Context, _, id string) (*billing.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, billing.ErrNotFound
	}

	cp := *inv

	return &cp, nil
}

func (m *mockRepo) ListInvoices(_ context.Context, _ string, _ billing.InvoiceFilter) ([]*billing.Invoice, error) {
	var out []*billing.Invoice
	for _, inv := range m.invoices {
		out = append(out, inv)
	}

	return out, nil
}

func (m *mockRepo) UpdateInvoice(_ context.Context, inv *billing.Invoice) error {
	m.invoices[inv.ID] = inv
	return nil
}

func (m *mockRepo) DeleteInvoice(_ context.Context, _, id string) error {
	delete(m.invoices, id)
	return nil
}

func (m *mockRepo) CreateEstimate(_ context.Context, est *billing.Estimate) error {
	est.ID = "est-" + est.Number
	m.estimates[est.ID] = est

	return nil
}

func (m *mockRepo) GetEstimate(_ context.Context, _, id string) (*billing.Estimate, error) {
	est, ok := m.estimates[id]
	if !ok {
		return nil, billing.ErrNotFound
	}

	cp := *est

	return &cp, nil
}

func (m *mockRepo) ListEstimates(_ context.Context, _ string) ([]*billing.Estimate, error) {
	return nil, nil
}

func (m *mockRepo) UpdateEstimate(_ context.Context, est *billing.Estimate) error {
	m.estimates[est.ID] = est
	return nil
}

func (m *mockRepo) DeleteEstimate(_ context.Context, _, id string) error {
	delete(m.estimates, id)
	return nil
}

func TestService_CreateInvoice_ComputesTotal(t *testing.T) {
	repo := newMockRepo()
	svc := billing.NewService(repo)

	inv, err := svc.CreateInvoice(context.Background(), "t1", billing.InvoiceParams{
		Number: "2026-001",
		LineItems: []billing.LineItem{
			{Description: "Hours", Quantity: 2, UnitPrice: 1000},
			{Description: "Filing fee", Quantity: 1, UnitPrice: 500},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), inv.TotalAmount)
	assert.Equal(t, billing.InvoiceDraft, inv.Status)
}

func TestService_CreateInvoice_RejectsBadItems(t *testing.T) {
	svc := billing.NewService(newMockRepo())

	_, err := svc.CreateInvoice(context.Background(), "t1", billing.InvoiceParams{
		LineItems: []billing.LineItem{{Description: "", Quantity: 1, UnitPrice: 100}},
	})
	assert.ErrorIs(t, err, billing.ErrEmptyLineItem)

	_, err = svc.CreateInvoice(context.Background(), "t1", billing.InvoiceParams{
		LineItems: []billing.LineItem{{Description: "Hours", Quantity: 0, UnitPrice: 100}},
	})
	assert.ErrorIs(t, err, billing.ErrEmptyLineItem)
}

func TestService_RecordPayment_DerivesStatus(t *testing.T) {
	repo := newMockRepo()
	svc := billing.NewService(repo)

	inv, err := svc.CreateInvoice(context.Background(), "t1", billing.InvoiceParams{
		Number:    "2026-002",
		LineItems: []billing.LineItem{{Description: "Retainer", Quantity: 1, UnitPrice: 10000}},
	})
	require.NoError(t, err)

	_, err = svc.MarkSent(context.Background(), "t1", inv.ID)
	require.NoError(t, err)

	got, err := svc.RecordPayment(context.Background(), "t1", inv.ID, 4000, "wire")
	require.NoError(t, err)
	assert.Equal(t, billing.InvoicePartiallyPaid, got.Status)
	assert.Equal(t, int64(6000), got.AmountDue())

	got, err = svc.RecordPayment(context.Background(), "t1", inv.ID, 6000, "wire")
	require.NoError(t, err)
	assert.Equal(t, billing.InvoicePaid, got.Status)
	assert.Equal(t, int64(0), got.AmountDue())
}

func TestService_PromoteEstimate(t *testing.T) {
	repo := newMockRepo()
	svc := billing.NewService(repo)

	est, err := svc.CreateEstimate(context.Background(), "t1", billing.EstimateParams{
		Number:    "E-7",
		ContactID: "contact-1",
		LineItems: []billing.LineItem{{Description: "Discovery phase", Quantity: 10, UnitPrice: 20000}},
	})
	require.NoError(t, err)

	inv, err := svc.PromoteEstimate(context.Background(), "t1", est.ID, "2026-003")
	require.NoError(t, err)

	assert.Equal(t, "contact-1", inv.ContactID)
	assert.Equal(t, est.LineItems, inv.LineItems)
	assert.Equal(t, int64(200000), inv.TotalAmount)
	assert.Equal(t, billing.InvoiceDraft, inv.Status)

	promoted, err := svc.GetEstimate(context.Background(), "t1", est.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.EstimateAccepted, promoted.Status)
}

func TestService_Revenue(t *testing.T) {
	repo := newMockRepo()
	svc := billing.NewService(repo)

	inv, err := svc.CreateInvoice(context.Background(), "t1", billing.InvoiceParams{
		Number:    "2026-004",
		LineItems: []billing.LineItem{{Description: "Work", Quantity: 1, UnitPrice: 50000}},
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), "t1", inv.ID, 20000, "card")
	require.NoError(t, err)

	summary, err := svc.Revenue(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), summary.Billed)
	assert.Equal(t, int64(20000), summary.Collected)
	assert.Equal(t, int64(30000), summary.Outstanding)
}
