package contact

import (
	"context"
	"errors"
)

type Repository interface {
	CreateContact(ctx context.Context, c *Contact) error
	GetContact(ctx context.Context, tenantID, id string) (*Contact, error)
	FindByEmail(ctx context.Context, tenantID, email string) (*Contact, error)
	ListContacts(ctx context.Context, tenantID string) ([]*Contact, error)
	UpdateContact(ctx context.Context, c *Contact) error
	DeleteContact(ctx context.Context, tenantID, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name    string
	Email   string
	Company string
	Title   string
	Avatar  string
	Phone   string
	Address string
}

func (s *Service) Create(ctx context.Context, tenantID string, params CreateParams) (*Contact, error) {
	c := &Contact{
		TenantID: tenantID,
		Name:     params.Name,
		Email:    params.Email,
		Company:  params.Company,
		Title:    params.Title,
		Avatar:   params.Avatar,
		Phone:    params.Phone,
		Address:  params.Address,
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// FindOrCreate returns the contact with the given email if one exists,
// otherwise creates a new one. Lead conversion relies on this to dedup.
func (s *Service) FindOrCreate(ctx context.Context, tenantID string, params CreateParams) (*Contact, bool, error) {
	if params.Email != "" {
		existing, err := s.repo.FindByEmail(ctx, tenantID, params.Email)
		if err == nil {
			return existing, false, nil
		}

		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
	}

	created, err := s.Create(ctx, tenantID, params)
	if err != nil {
		return nil, false, err
	}

	return created, true, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*Contact, error) {
	return s.repo.GetContact(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string) ([]*Contact, error) {
	return s.repo.ListContacts(ctx, tenantID)
}

func (s *Service) Update(ctx context.Context, c *Contact) error {
	return s.repo.UpdateContact(ctx, c)
}

func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteContact(ctx, tenantID, id)
}
