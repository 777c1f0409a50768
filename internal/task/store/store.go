package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stackfield/crmd/internal/task"
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

const taskColumns = `
	id, tenant_id, title, assignee, due_date, status, priority, parent_kind, parent_id, created_at, updated_at
`

func scanTask(s scanner) (*task.Task, error) {
	var t task.Task

	var status, priority, kind string

	var assignee, parentID sql.NullString

	if err := s.Scan(
		&t.ID, &t.TenantID, &t.Title, &assignee, &t.DueDate, &status, &priority,
		&kind, &parentID, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = task.Status(status)
	t.Priority = task.Priority(priority)
	t.ParentKind = task.ParentKind(kind)
	t.Assignee = assignee.String
	t.ParentID = parentID.String

	return &t, nil
}

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (tenant_id, title, assignee, due_date, status, priority, parent_kind, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.TenantID, t.Title, t.Assignee, t.DueDate, t.Status, t.Priority, t.ParentKind, t.ParentID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	return nil
}

func (s *Store) GetTask(ctx context.Context, tenantID, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, task.ErrNotFound
		}

		return nil, fmt.Errorf("getting task: %w", err)
	}

	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, tenantID string, filter task.ListFilter) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE tenant_id = $1 AND deleted_at IS NULL`

	args := []any{tenantID}
	argIdx := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Assignee != nil {
		query += fmt.Sprintf(" AND assignee = $%d", argIdx)

		args = append(args, *filter.Assignee)
		argIdx++
	}

	if filter.ParentKind != nil {
		query += fmt.Sprintf(" AND parent_kind = $%d", argIdx)

		args = append(args, *filter.ParentKind)
		argIdx++
	}

	if filter.ParentID != nil {
		query += fmt.Sprintf(" AND parent_id = $%d", argIdx)

		args = append(args, *filter.ParentID)
		argIdx++
	}

	if filter.DueBefore != nil {
		query += fmt.Sprintf(" AND due_date IS NOT NULL AND due_date < $%d", argIdx)

		args = append(args, *filter.DueBefore)
		argIdx++
	}

	query += " ORDER BY due_date ASC NULLS LAST, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (s *Store) UpdateTask(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, assignee = $2, due_date = $3, status = $4, priority = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		t.Title, t.Assignee, t.DueDate, t.Status, t.Priority, t.TenantID, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	return nil
}

func (s *Store) DeleteTask(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE tasks
		SET deleted_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	return nil
}
