package opportunity

import (
	"context"
	"time"
)

type Repository interface {
	CreateOpportunity(ctx context.Context, o *Opportunity) error
	GetOpportunity(ctx context.Context, tenantID, id string) (*Opportunity, error)
	ListOpportunities(ctx context.Context, tenantID string, filter ListFilter) ([]*Opportunity, error)
	UpdateOpportunity(ctx context.Context, o *Opportunity) error
	DeleteOpportunity(ctx context.Context, tenantID, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Title     string
	ContactID string
	Value     int64
	Stage     Stage
	CloseDate *time.Time
}

type ListFilter struct {
	Stage     *Stage
	ContactID *string
}

func (s *Service) Create(ctx context.Context, tenantID string, params CreateParams) (*Opportunity, error) {
	stage := params.Stage
	if stage == "" {
		stage = StageProspecting
	}

	if !stage.Valid() {
		return nil, ErrUnknownStage
	}

	o := &Opportunity{
		TenantID:  tenantID,
		Title:     params.Title,
		ContactID: params.ContactID,
		Value:     params.Value,
		Stage:     stage,
		CloseDate: params.CloseDate,
	}
	if err := s.repo.CreateOpportunity(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*Opportunity, error) {
	return s.repo.GetOpportunity(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string, filter ListFilter) ([]*Opportunity, error) {
	return s.repo.ListOpportunities(ctx, tenantID, filter)
}

func (s *Service) Update(ctx context.Context, o *Opportunity) error {
	if !o.Stage.Valid() {
		return ErrUnknownStage
	}

	return s.repo.UpdateOpportunity(ctx, o)
}

// MoveStage advances or retreats the opportunity within the pipeline.
// Closed opportunities stay closed.
func (s *Service) MoveStage(ctx context.Context, tenantID, id string, stage Stage) (*Opportunity, error) {
	if !stage.Valid() {
		return nil, ErrUnknownStage
	}

	o, err := s.repo.GetOpportunity(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if o.Stage.Closed() {
		return nil, ErrClosedStage
	}

	o.Stage = stage
	if stage.Closed() && o.CloseDate == nil {
		now := time.Now()
		o.CloseDate = &now
	}

	if err := s.repo.UpdateOpportunity(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteOpportunity(ctx, tenantID, id)
}

// PipelineSummary returns per-stage counts and totals for the tenant.
func (s *Service) PipelineSummary(ctx context.Context, tenantID string) ([]StageSummary, error) {
	opps, err := s.repo.ListOpportunities(ctx, tenantID, ListFilter{})
	if err != nil {
		return nil, err
	}

	return Summarize(opps), nil
}
