package email

import (
	"context"
	"fmt"
)

type Repository interface {
	CreateTemplate(ctx context.Context, t *Template) error
	GetTemplate(ctx context.Context, tenantID, id string) (*Template, error)
	ListTemplates(ctx context.Context, tenantID string) ([]*Template, error)
	UpdateTemplate(ctx context.Context, t *Template) error
	DeleteTemplate(ctx context.Context, tenantID, id string) error
}

type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type Service struct {
	repo   Repository
	sender Sender
}

func NewService(repo Repository, sender Sender) *Service {
	return &Service{repo: repo, sender: sender}
}

type TemplateParams struct {
	Name    string
	Subject string
	Body    string
}

func (s *Service) CreateTemplate(ctx context.Context, tenantID string, params TemplateParams) (*Template, error) {
	if params.Name == "" || params.Subject == "" {
		return nil, fmt.Errorf("template needs a name and a subject")
	}

	t := &Template{
		TenantID: tenantID,
		Name:     params.Name,
		Subject:  params.Subject,
		Body:     params.Body,
	}

	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) GetTemplate(ctx context.Context, tenantID, id string) (*Template, error) {
	return s.repo.GetTemplate(ctx, tenantID, id)
}

func (s *Service) ListTemplates(ctx context.Context, tenantID string) ([]*Template, error) {
	return s.repo.ListTemplates(ctx, tenantID)
}

func (s *Service) UpdateTemplate(ctx context.Context, tenantID, id string, params TemplateParams) (*Template, error) {
	t, err := s.repo.GetTemplate(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != "" {
		t.Name = params.Name
	}

	if params.Subject != "" {
		t.Subject = params.Subject
	}

	if params.Body != "" {
		t.Body = params.Body
	}

	if err := s.repo.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) DeleteTemplate(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteTemplate(ctx, tenantID, id)
}

// SendTemplated renders a stored template and sends it.
func (s *Service) SendTemplated(ctx context.Context, tenantID, templateID, to string, values map[string]string) error {
	t, err := s.repo.GetTemplate(ctx, tenantID, templateID)
	if err != nil {
		return err
	}

	subject, body := t.Render(values)

	if err := s.sender.Send(ctx, to, subject, body); err != nil {
		return fmt.Errorf("sending templated email: %w", err)
	}

	return nil
}

// Send delivers a one-off message without a template.
func (s *Service) Send(ctx context.Context, to, subject, html string) error {
	return s.sender.Send(ctx, to, subject, html)
}
