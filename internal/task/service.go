package task

import (
	"context"
	"time"
)

type Repository interface {
	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, tenantID, id string) (*Task, error)
	ListTasks(ctx context.Context, tenantID string, filter ListFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, tenantID, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Title      string
	Assignee   string
	DueDate    *time.Time
	Priority   Priority
	ParentKind ParentKind
	ParentID   string
}

type ListFilter struct {
	Status     *Status
	Assignee   *string
	ParentKind *ParentKind
	ParentID   *string
	DueBefore  *time.Time
}

func (s *Service) Create(ctx context.Context, tenantID string, params CreateParams) (*Task, error) {
	kind := params.ParentKind
	if kind == "" {
		kind = ParentGeneral
	}

	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	priority := params.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	t := &Task{
		TenantID:   tenantID,
		Title:      params.Title,
		Assignee:   params.Assignee,
		DueDate:    params.DueDate,
		Status:     StatusToDo,
		Priority:   priority,
		ParentKind: kind,
		ParentID:   params.ParentID,
	}
	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*Task, error) {
	return s.repo.GetTask(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string, filter ListFilter) ([]*Task, error) {
	return s.repo.ListTasks(ctx, tenantID, filter)
}

func (s *Service) Update(ctx context.Context, t *Task) error {
	return s.repo.UpdateTask(ctx, t)
}

func (s *Service) UpdateStatus(ctx context.Context, tenantID, id string, status Status) (*Task, error) {
	t, err := s.repo.GetTask(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	t.Status = status
	if err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteTask(ctx, tenantID, id)
}

// Overdue returns open tasks whose due date has passed, for the dashboard.
func (s *Service) Overdue(ctx context.Context, tenantID string, now time.Time) ([]*Task, error) {
	tasks, err := s.repo.ListTasks(ctx, tenantID, ListFilter{DueBefore: &now})
	if err != nil {
		return nil, err
	}

	var overdue []*Task

	for _, t := range tasks {
		if t.Overdue(now) {
			overdue = append(overdue, t)
		}
	}

	return overdue, nil
}
