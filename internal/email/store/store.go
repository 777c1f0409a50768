package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stackfield/crmd/internal/email"
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

const templateColumns = `
	id, tenant_id, name, subject, body, created_at, updated_at
`

func scanTemplate(s scanner) (*email.Template, error) {
	var t email.Template

	if err := s.Scan(&t.ID, &t.TenantID, &t.Name, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *Store) CreateTemplate(ctx context.Context, t *email.Template) error {
	query := `
		INSERT INTO email_templates (tenant_id, name, subject, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, t.TenantID, t.Name, t.Subject, t.Body).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating email template: %w", err)
	}

	return nil
}

func (s *Store) GetTemplate(ctx context.Context, tenantID, id string) (*email.Template, error) {
	query := `SELECT ` + templateColumns + `
		FROM email_templates
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`

	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, email.ErrNotFound
		}

		return nil, fmt.Errorf("getting email template: %w", err)
	}

	return t, nil
}

func (s *Store) ListTemplates(ctx context.Context, tenantID string) ([]*email.Template, error) {
	query := `SELECT ` + templateColumns + `
		FROM email_templates
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing email templates: %w", err)
	}
	defer rows.Close()

	var templates []*email.Template

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning email template: %w", err)
		}

		templates = append(templates, t)
	}

	return templates, rows.Err()
}

func (s *Store) UpdateTemplate(ctx context.Context, t *email.Template) error {
	query := `
		UPDATE email_templates
		SET name = $1, subject = $2, body = $3, updated_at = NOW()
		WHERE tenant_id = $4 AND id = $5 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, t.Name, t.Subject, t.Body, t.TenantID, t.ID)
	if err != nil {
		return fmt.Errorf("updating email template: %w", err)
	}

	return nil
}

func (s *Store) DeleteTemplate(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE email_templates
		SET deleted_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting email template: %w", err)
	}

	return nil
}
