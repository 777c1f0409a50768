package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stackfield/crmd/internal/billing"
)

func TestTotal(t *testing.T) {
	type testCase struct {
		name  string
		items []billing.LineItem
		want  int64
	}

	tests := []testCase{
		{
			name: "TwoItems",
			items: []billing.LineItem{
				{Description: "Hours", Quantity: 2, UnitPrice: 1000},
				{Description: "Filing fee", Quantity: 1, UnitPrice: 500},
			},
			want: 2500,
		},
		{
			name: "AfterRemovingSecondItem",
			items: []billing.LineItem{
				{Description: "Hours", Quantity: 2, UnitPrice: 1000},
			},
			want: 2000,
		},
		{
			name: "Empty",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.Total(tt.items))
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	type testCase struct {
		name  string
		prev  billing.InvoiceStatus
		total int64
		paid  int64
		want  billing.InvoiceStatus
	}

	tests := []testCase{
		{name: "FullyPaid", prev: billing.InvoiceSent, total: 10000, paid: 10000, want: billing.InvoicePaid},
		{name: "Overpaid", prev: billing.InvoiceSent, total: 10000, paid: 12000, want: billing.InvoicePaid},
		{name: "PartiallyPaid", prev: billing.InvoiceSent, total: 10000, paid: 4000, want: billing.InvoicePartiallyPaid},
		{name: "NoPaymentsKeepsPrior", prev: billing.InvoiceSent, total: 10000, paid: 0, want: billing.InvoiceSent},
		{name: "NoPaymentsKeepsDraft", prev: billing.InvoiceDraft, total: 10000, paid: 0, want: billing.InvoiceDraft},
		{name: "EmptyInvoiceStaysDraft", prev: billing.InvoiceDraft, total: 0, paid: 0, want: billing.InvoiceDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.DeriveStatus(tt.prev, tt.total, tt.paid))
		})
	}
}

func TestInvoice_Recalculate(t *testing.T) {
	inv := billing.Invoice{
		Status: billing.InvoiceSent,
		LineItems: []billing.LineItem{
			{Description: "Consulting", Quantity: 2, UnitPrice: 1000},
			{Description: "Travel", Quantity: 1, UnitPrice: 500},
		},
	}

	inv.Recalculate()
	assert.Equal(t, int64(2500), inv.TotalAmount)
	assert.Equal(t, billing.InvoiceSent, inv.Status)
	assert.Equal(t, int64(2500), inv.AmountDue())

	inv.Payments = append(inv.Payments, billing.Payment{Amount: 1000})
	inv.Recalculate()
	assert.Equal(t, billing.InvoicePartiallyPaid, inv.Status)
	assert.Equal(t, int64(1500), inv.AmountDue())

	inv.Payments = append(inv.Payments, billing.Payment{Amount: 1500})
	inv.Recalculate()
	assert.Equal(t, billing.InvoicePaid, inv.Status)
	assert.Equal(t, int64(0), inv.AmountDue())

	// Idempotent: recalculating again changes nothing.
	inv.Recalculate()
	assert.Equal(t, billing.InvoicePaid, inv.Status)
	assert.Equal(t, int64(2500), inv.TotalAmount)
}
