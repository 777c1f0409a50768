package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/stackfield/crmd/internal/lead"
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

const leadColumns = `
	id, tenant_id, name, company, email, phone, score, status, last_contacted,
	contact_id, opportunity_id, created_at, updated_at
`

func scanLead(s scanner) (*lead.Lead, error) {
	var l lead.Lead

	var status string

	var email, phone, lastContacted sql.NullString

	if err := s.Scan(
		&l.ID, &l.TenantID, &l.Name, &l.Company, &email, &phone, &l.Score, &status,
		&lastContacted, &l.ContactID, &l.OpportunityID, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}

	l.Status = lead.Status(status)
	l.Email = email.String
	l.Phone = phone.String
	l.LastContacted = lastContacted.String

	return &l, nil
}

func (s *Store) CreateLead(ctx context.Context, l *lead.Lead) error {
	query := `
		INSERT INTO leads (tenant_id, name, company, email, phone, score, status, last_contacted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		l.TenantID, l.Name, l.Company, l.Email, l.Phone, l.Score, l.Status, l.LastContacted,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating lead: %w", err)
	}

	return nil
}

func (s *Store) CreateLeads(ctx context.Context, leads []*lead.Lead) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO leads (tenant_id, name, company, email, phone, score, status, last_contacted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, l := range leads {
		err := tx.QueryRowContext(ctx, query,
			l.TenantID, l.Name, l.Company, l.Email, l.Phone, l.Score, l.Status, l.LastContacted,
		).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating lead: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	return nil
}

func (s *Store) GetLead(ctx context.Context, tenantID, id string) (*lead.Lead, error) {
	query := `SELECT ` + leadColumns + `
		FROM leads
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`

	l, err := scanLead(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, lead.ErrNotFound
		}

		return nil, fmt.Errorf("getting lead: %w", err)
	}

	return l, nil
}

func (s *Store) ListLeads(ctx context.Context, tenantID string, filter lead.ListFilter) ([]*lead.Lead, error) {
	query := `SELECT ` + leadColumns + `
		FROM leads
		WHERE tenant_id = $1 AND deleted_at IS NULL`

	args := []any{tenantID}
	argIdx := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.MinScore != nil {
		query += fmt.Sprintf(" AND score >= $%d", argIdx)

		args = append(args, *filter.MinScore)
		argIdx++
	}

	if filter.Query != nil {
		query += fmt.Sprintf(" AND (name ILIKE '%%' || $%d || '%%' OR company ILIKE '%%' || $%d || '%%')", argIdx, argIdx)

		args = append(args, *filter.Query)
		argIdx++
	}

	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	var leads []*lead.Lead

	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}

		leads = append(leads, l)
	}

	return leads, rows.Err()
}

func (s *Store) FindByEmails(ctx context.Context, tenantID string, emails []string) ([]*lead.Lead, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	query := `SELECT ` + leadColumns + `
		FROM leads
		WHERE tenant_id = $1 AND LOWER(email) = ANY($2::text[]) AND deleted_at IS NULL`

	lowered := make([]string, len(emails))
	for i, e := range emails {
		lowered[i] = strings.ToLower(e)
	}

	// The pgx stdlib driver accepts []string for text[] parameters.
	rows, err := s.db.QueryContext(ctx, query, tenantID, lowered)
	if err != nil {
		return nil, fmt.Errorf("finding leads by email: %w", err)
	}
	defer rows.Close()

	var leads []*lead.Lead

	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}

		leads = append(leads, l)
	}

	return leads, rows.Err()
}

func (s *Store) UpdateLead(ctx context.Context, l *lead.Lead) error {
	query := `
		UPDATE leads
		SET name = $1, company = $2, email = $3, phone = $4, score = $5, status = $6,
			last_contacted = $7, contact_id = $8, opportunity_id = $9, updated_at = NOW()
		WHERE tenant_id = $10 AND id = $11 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		l.Name, l.Company, l.Email, l.Phone, l.Score, l.Status,
		l.LastContacted, l.ContactID, l.OpportunityID, l.TenantID, l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating lead: %w", err)
	}

	return nil
}

func (s *Store) DeleteLead(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE leads
		SET deleted_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}

	return nil
}
