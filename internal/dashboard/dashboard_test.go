package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardAddWidget(t *testing.T) {
	b := &Board{TenantID: "t1"}

	b.AddWidget("revenue")
	require.Equal(t, []string{"revenue"}, b.Widgets)
	require.Len(t, b.Layout, 1)
	assert.Equal(t, Cell{ID: "revenue", X: 0, Y: 0, W: defaultCellW, H: defaultCellH}, b.Layout[0])

	// Adding the same widget again changes nothing.
	b.AddWidget("revenue")
	assert.Equal(t, []string{"revenue"}, b.Widgets)
	assert.Len(t, b.Layout, 1)

	// New widgets land below the existing layout.
	b.AddWidget("pipeline-summary")
	require.Len(t, b.Layout, 2)
	assert.Equal(t, defaultCellH, b.Layout[1].Y)
}

func TestBoardRemoveWidget(t *testing.T) {
	b := &Board{TenantID: "t1"}
	b.AddWidget("revenue")
	b.AddWidget("overdue-tasks")

	b.RemoveWidget("revenue")
	assert.Equal(t, []string{"overdue-tasks"}, b.Widgets)
	require.Len(t, b.Layout, 1)
	assert.Equal(t, "overdue-tasks", b.Layout[0].ID)

	// Removing an id that is not on the board is a no-op.
	before := *b
	b.RemoveWidget("nope")
	assert.Equal(t, before.Widgets, b.Widgets)
	assert.Equal(t, before.Layout, b.Layout)
}

func TestBoardActiveCellsFiltersOrphans(t *testing.T) {
	b := &Board{
		TenantID: "t1",
		Widgets:  []string{"revenue"},
		Layout: []Cell{
			{ID: "revenue", W: 4, H: 3},
			{ID: "removed-long-ago", W: 4, H: 3},
		},
	}

	cells := b.ActiveCells()
	require.Len(t, cells, 1)
	assert.Equal(t, "revenue", cells[0].ID)
}

func TestClampForWidth(t *testing.T) {
	layout := []Cell{
		{ID: "a", X: 0, Y: 0, W: 12, H: 3},
		{ID: "b", X: 6, Y: 3, W: 4, H: 3},
		{ID: "c", X: 2, Y: 6, W: 2, H: 3},
	}

	sm := Breakpoint{Name: "sm", Cols: 4}
	clamped := ClampForWidth(layout, sm)

	assert.Equal(t, 4, clamped[0].W)
	assert.Equal(t, 0, clamped[0].X)

	// Cell b fits in width but overflows to the right; it is shifted back.
	assert.Equal(t, 4, clamped[1].W)
	assert.Equal(t, 0, clamped[1].X)

	// Cell c already fits and is untouched.
	assert.Equal(t, layout[2], clamped[2])

	// The input layout is never mutated.
	assert.Equal(t, 12, layout[0].W)
}

func TestRegistryUnknownWidget(t *testing.T) {
	r := NewRegistry()
	r.Register(CatalogEntry{ID: "revenue", Name: "Revenue", Component: "revenue"},
		func(ctx context.Context, tenantID string) (string, error) { return "ok", nil })

	body, err := r.Render(context.Background(), "t1", "revenue")
	require.NoError(t, err)
	assert.Equal(t, "ok", body)

	// An id with no catalog entry renders a placeholder, not an error.
	body, err = r.Render(context.Background(), "t1", "ghost")
	require.NoError(t, err)
	assert.Contains(t, body, "Unknown widget")
}

type memRepo struct {
	boards map[string]*Board
}

func (m *memRepo) GetBoard(ctx context.Context, tenantID string) (*Board, error) {
	b, ok := m.boards[tenantID]
	if !ok {
		return nil, ErrNotFound
	}

	return b, nil
}

func (m *memRepo) SaveBoard(ctx context.Context, b *Board) error {
	if m.boards == nil {
		m.boards = make(map[string]*Board)
	}

	m.boards[b.TenantID] = b

	return nil
}

func TestServiceDefaultBoard(t *testing.T) {
	r := NewRegistry()
	r.Register(CatalogEntry{ID: "revenue", Name: "Revenue", Component: "revenue"},
		func(ctx context.Context, tenantID string) (string, error) { return "ok", nil })

	svc := NewService(&memRepo{}, r)

	b, err := svc.Board(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"revenue"}, b.Widgets)
}

func TestServiceRenderSurvivesFailingWidget(t *testing.T) {
	r := NewRegistry()
	r.Register(CatalogEntry{ID: "good", Name: "Good", Component: "good"},
		func(ctx context.Context, tenantID string) (string, error) { return "fine", nil })
	r.Register(CatalogEntry{ID: "bad", Name: "Bad", Component: "bad"},
		func(ctx context.Context, tenantID string) (string, error) {
			return "", assert.AnError
		})

	repo := &memRepo{boards: map[string]*Board{
		"t1": {TenantID: "t1", Widgets: []string{"good", "bad"}},
	}}
	svc := NewService(repo, r)

	rendered, err := svc.Render(context.Background(), "t1", Breakpoints[0])
	require.NoError(t, err)
	require.Len(t, rendered, 2)
	assert.Equal(t, "fine", rendered[0].Body)
	assert.Contains(t, rendered[1].Body, "Failed to load")
}
