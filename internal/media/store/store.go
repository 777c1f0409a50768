package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/stackfield/crmd/internal/media"
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

const fileColumns = `
	id, tenant_id, url, type, category, description, tags, notes, created_at, updated_at
`

// Tags ride in a text column as a comma-joined list. They are display
// metadata, never filtered on server-side.
func scanFile(s scanner) (*media.File, error) {
	var f media.File

	var fileType, tags string

	if err := s.Scan(
		&f.ID, &f.TenantID, &f.URL, &fileType, &f.Category,
		&f.Description, &tags, &f.Notes, &f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	f.Type = media.FileType(fileType)
	if tags != "" {
		f.Tags = strings.Split(tags, ",")
	}

	return &f, nil
}

func (s *Store) CreateFile(ctx context.Context, f *media.File) error {
	query := `
		INSERT INTO media_files (tenant_id, url, type, category, description, tags, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		f.TenantID, f.URL, f.Type, f.Category, f.Description, strings.Join(f.Tags, ","), f.Notes,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating media file: %w", err)
	}

	return nil
}

func (s *Store) GetFile(ctx context.Context, tenantID, id string) (*media.File, error) {
	query := `SELECT ` + fileColumns + `
		FROM media_files
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`

	f, err := scanFile(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, media.ErrNotFound
		}

		return nil, fmt.Errorf("getting media file: %w", err)
	}

	return f, nil
}

func (s *Store) ListFiles(ctx context.Context, tenantID string, filter media.Filter) ([]*media.File, error) {
	query := `SELECT ` + fileColumns + `
		FROM media_files
		WHERE tenant_id = $1 AND deleted_at IS NULL`

	args := []any{tenantID}
	argIdx := 2

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing media files: %w", err)
	}
	defer rows.Close()

	var files []*media.File

	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning media file: %w", err)
		}

		files = append(files, f)
	}

	return files, rows.Err()
}

func (s *Store) UpdateFile(ctx context.Context, f *media.File) error {
	query := `
		UPDATE media_files
		SET url = $1, type = $2, category = $3, description = $4, tags = $5, notes = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		f.URL, f.Type, f.Category, f.Description, strings.Join(f.Tags, ","), f.Notes, f.TenantID, f.ID,
	)
	if err != nil {
		return fmt.Errorf("updating media file: %w", err)
	}

	return nil
}

func (s *Store) DeleteFile(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE media_files
		SET deleted_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting media file: %w", err)
	}

	return nil
}
