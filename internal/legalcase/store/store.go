package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stackfield/crmd/internal/legalcase"
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

const caseColumns = `
	id, tenant_id, title, status, attorney_id,
	defendant_name, defendant_email, defendant_phone, defendant_counsel,
	opposition_name, opposition_email, opposition_phone, opposition_counsel,
	created_at, updated_at
`

func scanCase(s scanner) (*legalcase.Case, error) {
	var c legalcase.Case

	var status string

	if err := s.Scan(
		&c.ID, &c.TenantID, &c.Title, &status, &c.AttorneyID,
		&c.Defendant.Name, &c.Defendant.Email, &c.Defendant.Phone, &c.Defendant.Counsel,
		&c.Opposition.Name, &c.Opposition.Email, &c.Opposition.Phone, &c.Opposition.Counsel,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = legalcase.Status(status)

	return &c, nil
}

func (s *Store) CreateCase(ctx context.Context, c *legalcase.Case) error {
	query := `
		INSERT INTO cases (
			tenant_id, title, status, attorney_id,
			defendant_name, defendant_email, defendant_phone, defendant_counsel,
			opposition_name, opposition_email, opposition_phone, opposition_counsel,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.TenantID, c.Title, c.Status, c.AttorneyID,
		c.Defendant.Name, c.Defendant.Email, c.Defendant.Phone, c.Defendant.Counsel,
		c.Opposition.Name, c.Opposition.Email, c.Opposition.Phone, c.Opposition.Counsel,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating case: %w", err)
	}

	return nil
}

func (s *Store) GetCase(ctx context.Context, tenantID, id string) (*legalcase.Case, error) {
	query := `SELECT ` + caseColumns + `
		FROM cases
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`

	c, err := scanCase(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, legalcase.ErrNotFound
		}

		return nil, fmt.Errorf("getting case: %w", err)
	}

	if c.Notes, err = s.listNotes(ctx, c.ID); err != nil {
		return nil, err
	}

	if c.History, err = s.listHistory(ctx, c.ID); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Store) ListCases(ctx context.Context, tenantID string, filter legalcase.ListFilter) ([]*legalcase.Case, error) {
	query := `SELECT ` + caseColumns + `
		FROM cases
		WHERE tenant_id = $1 AND deleted_at IS NULL`

	args := []any{tenantID}
	argIdx := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.AttorneyID != nil {
		query += fmt.Sprintf(" AND attorney_id = $%d", argIdx)

		args = append(args, *filter.AttorneyID)
		argIdx++
	}

	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cases: %w", err)
	}
	defer rows.Close()

	var cases []*legalcase.Case

	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning case: %w", err)
		}

		cases = append(cases, c)
	}

	return cases, rows.Err()
}

func (s *Store) UpdateCase(ctx context.Context, c *legalcase.Case) error {
	query := `
		UPDATE cases
		SET title = $1, status = $2, attorney_id = $3,
			defendant_name = $4, defendant_email = $5, defendant_phone = $6, defendant_counsel = $7,
			opposition_name = $8, opposition_email = $9, opposition_phone = $10, opposition_counsel = $11,
			updated_at = NOW()
		WHERE tenant_id = $12 AND id = $13 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Title, c.Status, c.AttorneyID,
		c.Defendant.Name, c.Defendant.Email, c.Defendant.Phone, c.Defendant.Counsel,
		c.Opposition.Name, c.Opposition.Email, c.Opposition.Phone, c.Opposition.Counsel,
		c.TenantID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating case: %w", err)
	}

	return nil
}

func (s *Store) DeleteCase(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE cases
		SET deleted_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting case: %w", err)
	}

	return nil
}

func (s *Store) AppendNote(ctx context.Context, note *legalcase.Note) error {
	query := `
		INSERT INTO case_notes (case_id, author, body, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, note.CaseID, note.Author, note.Body).
		Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending note: %w", err)
	}

	return nil
}

func (s *Store) AppendHistory(ctx context.Context, entry *legalcase.HistoryEntry) error {
	query := `
		INSERT INTO case_history (case_id, from_status, to_status, actor, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, entry.CaseID, entry.From, entry.To, entry.Actor).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending history: %w", err)
	}

	return nil
}

func (s *Store) listNotes(ctx context.Context, caseID string) ([]legalcase.Note, error) {
	query := `
		SELECT id, case_id, author, body, created_at
		FROM case_notes
		WHERE case_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []legalcase.Note

	for rows.Next() {
		var n legalcase.Note
		if err := rows.Scan(&n.ID, &n.CaseID, &n.Author, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}

		notes = append(notes, n)
	}

	return notes, rows.Err()
}

func (s *Store) listHistory(ctx context.Context, caseID string) ([]legalcase.HistoryEntry, error) {
	query := `
		SELECT id, case_id, from_status, to_status, actor, created_at
		FROM case_history
		WHERE case_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []legalcase.HistoryEntry

	for rows.Next() {
		var e legalcase.HistoryEntry

		var from, to string

		if err := rows.Scan(&e.ID, &e.CaseID, &from, &to, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}

		e.From = legalcase.Status(from)
		e.To = legalcase.Status(to)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
