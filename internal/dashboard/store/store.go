package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/stackfield/crmd/internal/dashboard"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// One row per tenant. Widgets and layout are JSONB so layout edits are a
// single upsert.
func (s *Store) GetBoard(ctx context.Context, tenantID string) (*dashboard.Board, error) {
	query := `
		SELECT tenant_id, widgets, layout, updated_at
		FROM dashboards
		WHERE tenant_id = $1
	`

	var b dashboard.Board

	var widgets, layout []byte

	err := s.db.QueryRowContext(ctx, query, tenantID).Scan(&b.TenantID, &widgets, &layout, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dashboard.ErrNotFound
		}

		return nil, fmt.Errorf("getting dashboard: %w", err)
	}

	if err := json.Unmarshal(widgets, &b.Widgets); err != nil {
		return nil, fmt.Errorf("decoding widget list: %w", err)
	}

	if err := json.Unmarshal(layout, &b.Layout); err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}

	return &b, nil
}

func (s *Store) SaveBoard(ctx context.Context, b *dashboard.Board) error {
	widgets, err := json.Marshal(b.Widgets)
	if err != nil {
		return fmt.Errorf("encoding widget list: %w", err)
	}

	layout, err := json.Marshal(b.Layout)
	if err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}

	query := `
		INSERT INTO dashboards (tenant_id, widgets, layout, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (tenant_id) DO UPDATE
		SET widgets = EXCLUDED.widgets, layout = EXCLUDED.layout, updated_at = NOW()
		RETURNING updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, b.TenantID, widgets, layout).Scan(&b.UpdatedAt); err != nil {
		return fmt.Errorf("saving dashboard: %w", err)
	}

	return nil
}
