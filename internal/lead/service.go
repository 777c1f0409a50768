package lead

import (
	"context"
	"fmt"
	"strings"

	"github.com/stackfield/crmd/internal/contact"
	"github.com/stackfield/crmd/internal/opportunity"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=lead
type Repository interface {
	CreateLead(ctx context.Context, l *Lead) error
	GetLead(ctx context.Context, tenantID, id string) (*Lead, error)
	ListLeads(ctx context.Context, tenantID string, filter ListFilter) ([]*Lead, error)
	FindByEmails(ctx context.Context, tenantID string, emails []string) ([]*Lead, error)
	UpdateLead(ctx context.Context, l *Lead) error
	DeleteLead(ctx context.Context, tenantID, id string) error
	CreateLeads(ctx context.Context, leads []*Lead) error
}

// ContactDirectory is the slice of the contact service conversion needs.
type ContactDirectory interface {
	FindOrCreate(ctx context.Context, tenantID string, params contact.CreateParams) (*contact.Contact, bool, error)
}

// OpportunityCreator is the slice of the opportunity service conversion needs.
type OpportunityCreator interface {
	Create(ctx context.Context, tenantID string, params opportunity.CreateParams) (*opportunity.Opportunity, error)
}

// ActivityRecorder feeds the activity stream. A nil recorder disables it.
type ActivityRecorder interface {
	Record(ctx context.Context, tenantID, entityKind, entityID, verb, actor string)
}

type Service struct {
	repo          Repository
	contacts      ContactDirectory
	opportunities OpportunityCreator
	activity      ActivityRecorder
}

func NewService(repo Repository, contacts ContactDirectory, opportunities OpportunityCreator, activity ActivityRecorder) *Service {
	return &Service{
		repo:          repo,
		contacts:      contacts,
		opportunities: opportunities,
		activity:      activity,
	}
}

func (s *Service) record(ctx context.Context, tenantID, id, verb string) {
	if s.activity != nil {
		s.activity.Record(ctx, tenantID, "lead", id, verb, "")
	}
}

type CreateParams struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Score   int
	Status  Status
}

type ListFilter struct {
	Status   *Status
	MinScore *int
	Query    *string
}

func (s *Service) Create(ctx context.Context, tenantID string, params CreateParams) (*Lead, error) {
	if params.Score < 0 || params.Score > 100 {
		return nil, ErrInvalidScore
	}

	status := params.Status
	if status == "" {
		status = StatusNew
	}

	l := &Lead{
		TenantID: tenantID,
		Name:     params.Name,
		Company:  params.Company,
		Email:    params.Email,
		Phone:    params.Phone,
		Score:    params.Score,
		Status:   status,
	}
	if err := s.repo.CreateLead(ctx, l); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, l.ID, "created")

	return l, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*Lead, error) {
	return s.repo.GetLead(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string, filter ListFilter) ([]*Lead, error) {
	return s.repo.ListLeads(ctx, tenantID, filter)
}

func (s *Service) Update(ctx context.Context, l *Lead) error {
	if l.Score < 0 || l.Score > 100 {
		return ErrInvalidScore
	}

	return s.repo.UpdateLead(ctx, l)
}

// UpdateStatus transitions the lead. Terminal leads (Converted, Lost) reject
// further changes; conversion happens through Convert, not here.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, id string, status Status) (*Lead, error) {
	l, err := s.repo.GetLead(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if l.Status.Terminal() {
		return nil, ErrTerminalStatus
	}

	l.Status = status
	if err := s.repo.UpdateLead(ctx, l); err != nil {
		return nil, err
	}

	s.record(ctx, tenantID, l.ID, "moved to "+string(status))

	return l, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteLead(ctx, tenantID, id)
}

// ConvertOptions controls the optional opportunity step of a conversion.
type ConvertOptions struct {
	CreateOpportunity bool
	OpportunityTitle  string
	OpportunityValue  int64
}

// ConvertResult reports what the conversion produced. ContactCreated is
// false when an existing contact with the same email was reused.
type ConvertResult struct {
	Lead           *Lead
	Contact        *contact.Contact
	ContactCreated bool
	Opportunity    *opportunity.Opportunity
}

// Convert turns a lead into a contact (and optionally an opportunity):
//
//  1. the lead is marked Converted,
//  2. a contact is found by email or created from the lead's fields,
//  3. if requested, an opportunity is created referencing the contact from
//     step 2 - the reused one when a match existed, not a fresh record.
//
// Step 2 makes conversion idempotent on the contact side: two leads sharing
// an email end up attached to the same contact.
func (s *Service) Convert(ctx context.Context, tenantID, id string, opts ConvertOptions) (*ConvertResult, error) {
	l, err := s.repo.GetLead(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if l.Status == StatusConverted {
		return nil, ErrAlreadyConverted
	}

	if l.Status.Terminal() {
		return nil, ErrTerminalStatus
	}

	l.Status = StatusConverted
	if err := s.repo.UpdateLead(ctx, l); err != nil {
		return nil, fmt.Errorf("marking lead converted: %w", err)
	}

	c, created, err := s.contacts.FindOrCreate(ctx, tenantID, contact.CreateParams{
		Name:    l.Name,
		Email:   l.Email,
		Company: l.Company,
		Phone:   l.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("resolving contact: %w", err)
	}

	result := &ConvertResult{
		Lead:           l,
		Contact:        c,
		ContactCreated: created,
	}

	l.ContactID = &c.ID

	if opts.CreateOpportunity {
		title := opts.OpportunityTitle
		if title == "" {
			title = fmt.Sprintf("%s - %s", l.Company, l.Name)
		}

		opp, err := s.opportunities.Create(ctx, tenantID, opportunity.CreateParams{
			Title:     title,
			ContactID: c.ID,
			Value:     opts.OpportunityValue,
			Stage:     opportunity.StageProspecting,
		})
		if err != nil {
			return nil, fmt.Errorf("creating opportunity: %w", err)
		}

		result.Opportunity = opp
		l.OpportunityID = &opp.ID
	}

	if err := s.repo.UpdateLead(ctx, l); err != nil {
		return nil, fmt.Errorf("recording conversion references: %w", err)
	}

	s.record(ctx, tenantID, l.ID, "converted")

	return result, nil
}

// ImportResult mirrors a batch import: what was inserted, and which incoming
// rows collided with an existing lead by email.
type ImportResult struct {
	Imported  []*Lead
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Lead
}

// ImportBatch inserts a parsed batch of leads, reporting email collisions
// instead of inserting duplicates. Rows without an email are always treated
// as new.
func (s *Service) ImportBatch(ctx context.Context, tenantID string, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	var emails []string

	for _, p := range params {
		if p.Email != "" {
			emails = append(emails, p.Email)
		}
	}

	existing, err := s.repo.FindByEmails(ctx, tenantID, emails)
	if err != nil {
		return nil, fmt.Errorf("finding existing leads: %w", err)
	}

	byEmail := make(map[string]*Lead, len(existing))
	for _, l := range existing {
		byEmail[strings.ToLower(l.Email)] = l
	}

	result := &ImportResult{}

	var leads []*Lead

	for _, p := range params {
		if match, ok := byEmail[strings.ToLower(p.Email)]; ok && p.Email != "" {
			result.Conflicts = append(result.Conflicts, Conflict{Incoming: p, Existing: match})
			continue
		}

		status := p.Status
		if status == "" {
			status = StatusNew
		}

		leads = append(leads, &Lead{
			TenantID: tenantID,
			Name:     p.Name,
			Company:  p.Company,
			Email:    p.Email,
			Phone:    p.Phone,
			Score:    p.Score,
			Status:   status,
		})
	}

	if len(leads) > 0 {
		if err := s.repo.CreateLeads(ctx, leads); err != nil {
			return nil, fmt.Errorf("creating leads: %w", err)
		}
	}

	result.Imported = leads

	return result, nil
}
