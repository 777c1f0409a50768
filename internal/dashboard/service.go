package dashboard

import (
	"context"
	"errors"
)

type Repository interface {
	GetBoard(ctx context.Context, tenantID string) (*Board, error)
	SaveBoard(ctx context.Context, b *Board) error
}

type Service struct {
	repo     Repository
	registry *Registry
}

func NewService(repo Repository, registry *Registry) *Service {
	return &Service{repo: repo, registry: registry}
}

// Board returns the tenant's board, falling back to a default set when the
// tenant has never customized theirs.
func (s *Service) Board(ctx context.Context, tenantID string) (*Board, error) {
	b, err := s.repo.GetBoard(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.defaultBoard(tenantID), nil
		}

		return nil, err
	}

	return b, nil
}

func (s *Service) defaultBoard(tenantID string) *Board {
	b := &Board{TenantID: tenantID}

	for _, entry := range s.registry.Catalog() {
		b.AddWidget(entry.ID)
	}

	return b
}

func (s *Service) Catalog() []CatalogEntry {
	return s.registry.Catalog()
}

func (s *Service) AddWidget(ctx context.Context, tenantID, widgetID string) (*Board, error) {
	b, err := s.Board(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	b.AddWidget(widgetID)

	if err := s.repo.SaveBoard(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) RemoveWidget(ctx context.Context, tenantID, widgetID string) (*Board, error) {
	b, err := s.Board(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	b.RemoveWidget(widgetID)

	if err := s.repo.SaveBoard(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// SaveLayout persists a rearranged grid. Cells for widgets that are not
// active are dropped rather than rejected.
func (s *Service) SaveLayout(ctx context.Context, tenantID string, layout []Cell) (*Board, error) {
	b, err := s.Board(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	b.Layout = layout
	b.Layout = b.ActiveCells()

	if err := s.repo.SaveBoard(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// RenderedWidget pairs a widget's cell with its rendered body.
type RenderedWidget struct {
	Entry CatalogEntry
	Cell  Cell
	Body  string
}

// Render draws every active widget on the tenant's board. A widget whose
// renderer fails contributes its error text as the body so the rest of the
// board still renders.
func (s *Service) Render(ctx context.Context, tenantID string, bp Breakpoint) ([]RenderedWidget, error) {
	b, err := s.Board(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	cells := ClampForWidth(b.ActiveCells(), bp)
	byID := make(map[string]Cell, len(cells))

	for _, c := range cells {
		byID[c.ID] = c
	}

	rendered := make([]RenderedWidget, 0, len(b.Widgets))

	for _, id := range b.Widgets {
		body, err := s.registry.Render(ctx, tenantID, id)
		if err != nil {
			body = "Failed to load: " + err.Error()
		}

		entry, _ := s.registry.entryByID(id)
		if entry.ID == "" {
			entry = CatalogEntry{ID: id, Name: id}
		}

		rendered = append(rendered, RenderedWidget{Entry: entry, Cell: byID[id], Body: body})
	}

	return rendered, nil
}
