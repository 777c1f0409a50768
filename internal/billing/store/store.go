package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/stackfield/crmd/internal/billing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Line items and payments live in JSONB columns: they are always read and
// written with their invoice, never queried on their own.
func marshalJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding jsonb: %w", err)
	}

	return b, nil
}

const invoiceColumns = `
	id, tenant_id, number, contact_id, issue_date, due_date, line_items, payments, total_amount, status, created_at, updated_at
`

func scanInvoice(s scanner) (*billing.Invoice, error) {
	var inv billing.Invoice

	var status string

	var items, payments []byte

	if err := s.Scan(
		&inv.ID, &inv.TenantID, &inv.Number, &inv.ContactID, &inv.IssueDate, &inv.DueDate,
		&items, &payments, &inv.TotalAmount, &status, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = billing.InvoiceStatus(status)

	if err := json.Unmarshal(items, &inv.LineItems); err != nil {
		return nil, fmt.Errorf("decoding line items: %w", err)
	}

	if err := json.Unmarshal(payments, &inv.Payments); err != nil {
		return nil, fmt.Errorf("decoding payments: %w", err)
	}

	return &inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *billing.Invoice) error {
	items, err := marshalJSON(inv.LineItems)
	if err != nil {
		return err
	}

	payments, err := marshalJSON(inv.Payments)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO invoices (tenant_id, number, contact_id, issue_date, due_date, line_items, payments, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		inv.TenantID, inv.Number, inv.ContactID, inv.IssueDate, inv.DueDate,
		items, payments, inv.TotalAmount, inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, tenantID, id string) (*billing.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, tenantID string, filter billing.InvoiceFilter) ([]*billing.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE tenant_id = $1 AND deleted_at IS NULL`

	args := []any{tenantID}
	argIdx := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ContactID != nil {
		query += fmt.Sprintf(" AND contact_id = $%d", argIdx)

		args = append(args, *filter.ContactID)
		argIdx++
	}

	query += " ORDER BY issue_date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*billing.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *billing.Invoice) error {
	items, err := marshalJSON(inv.LineItems)
	if err != nil {
		return err
	}

	payments, err := marshalJSON(inv.Payments)
	if err != nil {
		return err
	}

	query := `
		UPDATE invoices
		SET number = $1, contact_id = $2, issue_date = $3, due_date = $4, line_items = $5,
			payments = $6, total_amount = $7, status = $8, updated_at = NOW()
		WHERE tenant_id = $9 AND id = $10 AND deleted_at IS NULL
	`

	_, err = s.db.ExecContext(ctx, query,
		inv.Number, inv.ContactID, inv.IssueDate, inv.DueDate, items,
		payments, inv.TotalAmount, inv.Status, inv.TenantID, inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE invoices
		SET deleted_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return nil
}

const estimateColumns = `
	id, tenant_id, number, contact_id, expiry_date, line_items, total_amount, status, created_at, updated_at
`

func scanEstimate(s scanner) (*billing.Estimate, error) {
	var est billing.Estimate

	var status string

	var items []byte

	if err := s.Scan(
		&est.ID, &est.TenantID, &est.Number, &est.ContactID, &est.ExpiryDate,
		&items, &est.TotalAmount, &status, &est.CreatedAt, &est.UpdatedAt,
	); err != nil {
		return nil, err
	}

	est.Status = billing.EstimateStatus(status)

	if err := json.Unmarshal(items, &est.LineItems); err != nil {
		return nil, fmt.Errorf("decoding line items: %w", err)
	}

	return &est, nil
}

func (s *Store) CreateEstimate(ctx context.Context, est *billing.Estimate) error {
	items, err := marshalJSON(est.LineItems)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO estimates (tenant_id, number, contact_id, expiry_date, line_items, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		est.TenantID, est.Number, est.ContactID, est.ExpiryDate, items, est.TotalAmount, est.Status,
	).Scan(&est.ID, &est.CreatedAt, &est.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating estimate: %w", err)
	}

	return nil
}

func (s *Store) GetEstimate(ctx context.Context, tenantID, id string) (*billing.Estimate, error) {
	query := `SELECT ` + estimateColumns + `
		FROM estimates
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`

	est, err := scanEstimate(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting estimate: %w", err)
	}

	return est, nil
}

func (s *Store) ListEstimates(ctx context.Context, tenantID string) ([]*billing.Estimate, error) {
	query := `SELECT ` + estimateColumns + `
		FROM estimates
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing estimates: %w", err)
	}
	defer rows.Close()

	var estimates []*billing.Estimate

	for rows.Next() {
		est, err := scanEstimate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning estimate: %w", err)
		}

		estimates = append(estimates, est)
	}

	return estimates, rows.Err()
}

func (s *Store) UpdateEstimate(ctx context.Context, est *billing.Estimate) error {
	items, err := marshalJSON(est.LineItems)
	if err != nil {
		return err
	}

	query := `
		UPDATE estimates
		SET number = $1, contact_id = $2, expiry_date = $3, line_items = $4, total_amount = $5, status = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8 AND deleted_at IS NULL
	`

	_, err = s.db.ExecContext(ctx, query,
		est.Number, est.ContactID, est.ExpiryDate, items, est.TotalAmount, est.Status, est.TenantID, est.ID,
	)
	if err != nil {
		return fmt.Errorf("updating estimate: %w", err)
	}

	return nil
}

func (s *Store) DeleteEstimate(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE estimates
		SET deleted_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting estimate: %w", err)
	}

	return nil
}
