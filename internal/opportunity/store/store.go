package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stackfield/crmd/internal/opportunity"
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

const opportunityColumns = `
	id, tenant_id, title, contact_id, value, stage, close_date, created_at, updated_at
`

func scanOpportunity(s scanner) (*opportunity.Opportunity, error) {
	var o opportunity.Opportunity

	var stage string

	if err := s.Scan(
		&o.ID, &o.TenantID, &o.Title, &o.ContactID, &o.Value, &stage, &o.CloseDate,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	o.Stage = opportunity.Stage(stage)

	return &o, nil
}

func (s *Store) CreateOpportunity(ctx context.Context, o *opportunity.Opportunity) error {
	query := `
		INSERT INTO opportunities (tenant_id, title, contact_id, value, stage, close_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		o.TenantID, o.Title, o.ContactID, o.Value, o.Stage, o.CloseDate,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating opportunity: %w", err)
	}

	return nil
}

func (s *Store) GetOpportunity(ctx context.Context, tenantID, id string) (*opportunity.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`

	o, err := scanOpportunity(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, opportunity.ErrNotFound
		}

		return nil, fmt.Errorf("getting opportunity: %w", err)
	}

	return o, nil
}

func (s *Store) ListOpportunities(ctx context.Context, tenantID string, filter opportunity.ListFilter) ([]*opportunity.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE tenant_id = $1 AND deleted_at IS NULL`

	args := []any{tenantID}
	argIdx := 2

	if filter.Stage != nil {
		query += fmt.Sprintf(" AND stage = $%d", argIdx)

		args = append(args, *filter.Stage)
		argIdx++
	}

	if filter.ContactID != nil {
		query += fmt.Sprintf(" AND contact_id = $%d", argIdx)

		args = append(args, *filter.ContactID)
		argIdx++
	}

	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing opportunities: %w", err)
	}
	defer rows.Close()

	var opps []*opportunity.Opportunity

	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning opportunity: %w", err)
		}

		opps = append(opps, o)
	}

	return opps, rows.Err()
}

func (s *Store) UpdateOpportunity(ctx context.Context, o *opportunity.Opportunity) error {
	query := `
		UPDATE opportunities
		SET title = $1, contact_id = $2, value = $3, stage = $4, close_date = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		o.Title, o.ContactID, o.Value, o.Stage, o.CloseDate, o.TenantID, o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating opportunity: %w", err)
	}

	return nil
}

func (s *Store) DeleteOpportunity(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE opportunities
		SET deleted_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting opportunity: %w", err)
	}

	return nil
}
