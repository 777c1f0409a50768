package media

import (
	"context"
	"fmt"
)

type Repository interface {
	CreateFile(ctx context.Context, f *File) error
	GetFile(ctx context.Context, tenantID, id string) (*File, error)
	ListFiles(ctx context.Context, tenantID string, filter Filter) ([]*File, error)
	UpdateFile(ctx context.Context, f *File) error
	DeleteFile(ctx context.Context, tenantID, id string) error
}

type Filter struct {
	Type     *FileType
	Category *string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	URL      string
	Type     FileType
	Category string
	Notes    string
}

func (s *Service) Create(ctx context.Context, tenantID string, params CreateParams) (*File, error) {
	if params.URL == "" {
		return nil, fmt.Errorf("file url is required")
	}

	f := &File{
		TenantID: tenantID,
		URL:      params.URL,
		Type:     params.Type,
		Category: params.Category,
		Notes:    params.Notes,
	}
	if f.Type == "" {
		f.Type = TypeDocument
	}

	if err := s.repo.CreateFile(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*File, error) {
	return s.repo.GetFile(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string, filter Filter) ([]*File, error) {
	return s.repo.ListFiles(ctx, tenantID, filter)
}

type UpdateParams struct {
	Category *string
	Notes    *string
}

func (s *Service) Update(ctx context.Context, tenantID, id string, params UpdateParams) (*File, error) {
	f, err := s.repo.GetFile(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if params.Category != nil {
		f.Category = *params.Category
	}

	if params.Notes != nil {
		f.Notes = *params.Notes
	}

	if err := s.repo.UpdateFile(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

// Describe attaches an AI-generated description and tag set to a file.
func (s *Service) Describe(ctx context.Context, tenantID, id, description string, tags []string) (*File, error) {
	f, err := s.repo.GetFile(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	f.Description = description
	f.Tags = tags

	if err := s.repo.UpdateFile(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteFile(ctx, tenantID, id)
}
