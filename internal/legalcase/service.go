package legalcase

import (
	"context"
	"fmt"
)

type Repository interface {
	CreateCase(ctx context.Context, c *Case) error
	GetCase(ctx context.Context, tenantID, id string) (*Case, error)
	ListCases(ctx context.Context, tenantID string, filter ListFilter) ([]*Case, error)
	UpdateCase(ctx context.Context, c *Case) error
	DeleteCase(ctx context.Context, tenantID, id string) error

	AppendNote(ctx context.Context, note *Note) error
	AppendHistory(ctx context.Context, entry *HistoryEntry) error
}

// ActivityRecorder feeds the activity stream. A nil recorder disables it.
type ActivityRecorder interface {
	Record(ctx context.Context, tenantID, entityKind, entityID, verb, actor string)
}

type Service struct {
	repo     Repository
	activity ActivityRecorder
}

func NewService(repo Repository, activity ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) record(ctx context.Context, tenantID, id, verb, actor string) {
	if s.activity != nil {
		s.activity.Record(ctx, tenantID, "case", id, verb, actor)
	}
}

type CreateParams struct {
	Title      string
	AttorneyID string
	Defendant  Party
	Opposition Party
}

type ListFilter struct {
	Status     *Status
	AttorneyID *string
}

func (s *Service) Create(ctx context.Context, tenantID string, params CreateParams) (*Case, error) {
	c := &Case{
		TenantID:   tenantID,
		Title:      params.Title,
		Status:     StatusIntake,
		AttorneyID: params.AttorneyID,
		Defendant:  params.Defendant,
		Opposition: params.Opposition,
	}
	if err := s.repo.CreateCase(ctx, c); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, c.ID, "opened", params.AttorneyID)

	return c, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*Case, error) {
	return s.repo.GetCase(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string, filter ListFilter) ([]*Case, error) {
	return s.repo.ListCases(ctx, tenantID, filter)
}

func (s *Service) Update(ctx context.Context, c *Case) error {
	if !c.Status.Valid() {
		return ErrUnknownStatus
	}

	return s.repo.UpdateCase(ctx, c)
}

// UpdateStatus transitions the case and appends a history entry recording
// the change. The history append happens after the update succeeds, so a
// failed transition leaves no phantom entry.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, id string, status Status, actor string) (*Case, error) {
	if !status.Valid() {
		return nil, ErrUnknownStatus
	}

	c, err := s.repo.GetCase(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	from := c.Status
	if from == status {
		return c, nil
	}

	c.Status = status
	if err := s.repo.UpdateCase(ctx, c); err != nil {
		return nil, fmt.Errorf("updating case status: %w", err)
	}

	entry := &HistoryEntry{
		CaseID: c.ID,
		From:   from,
		To:     status,
		Actor:  actor,
	}
	if err := s.repo.AppendHistory(ctx, entry); err != nil {
		return nil, fmt.Errorf("recording case history: %w", err)
	}

	c.History = append(c.History, *entry)

	s.record(ctx, tenantID, c.ID, "moved to "+string(status), actor)

	return c, nil
}

// AddNote appends an attorney note to the case.
func (s *Service) AddNote(ctx context.Context, tenantID, id, author, body string) (*Note, error) {
	c, err := s.repo.GetCase(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	note := &Note{
		CaseID: c.ID,
		Author: author,
		Body:   body,
	}
	if err := s.repo.AppendNote(ctx, note); err != nil {
		return nil, fmt.Errorf("appending note: %w", err)
	}

	s.record(ctx, tenantID, c.ID, "note added", author)

	return note, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteCase(ctx, tenantID, id)
}
