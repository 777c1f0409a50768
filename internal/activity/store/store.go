package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stackfield/crmd/internal/activity"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, e *activity.Entry) error {
	query := `
		INSERT INTO activity_entries (tenant_id, entity_kind, entity_id, verb, actor, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		e.TenantID, e.EntityKind, e.EntityID, e.Verb, e.Actor, e.OccurredAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("appending activity entry: %w", err)
	}

	return nil
}

func (s *Store) Recent(ctx context.Context, tenantID string, limit int) ([]*activity.Entry, error) {
	query := `
		SELECT id, tenant_id, entity_kind, entity_id, verb, actor, occurred_at
		FROM activity_entries
		WHERE tenant_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing activity entries: %w", err)
	}
	defer rows.Close()

	var entries []*activity.Entry

	for rows.Next() {
		var e activity.Entry

		if err := rows.Scan(&e.ID, &e.TenantID, &e.EntityKind, &e.EntityID, &e.Verb, &e.Actor, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}

		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
