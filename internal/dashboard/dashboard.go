package dashboard

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("dashboard not found")

// CatalogEntry describes a widget a user can add to their board. Component
// is the key the registry resolves a renderer by.
type CatalogEntry struct {
	ID          string
	Name        string
	Description string
	Component   string
}

// Cell positions a widget on the grid. Coordinates and sizes are in grid
// units, not pixels.
type Cell struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
	W  int    `json:"w"`
	H  int    `json:"h"`
}

// Board is one tenant's dashboard: which widgets are active and where they
// sit. Widgets holds the ids in display order.
type Board struct {
	TenantID  string
	Widgets   []string
	Layout    []Cell
	UpdatedAt time.Time
}

const (
	defaultCellW = 4
	defaultCellH = 3
)

func (b *Board) has(id string) bool {
	for _, w := range b.Widgets {
		if w == id {
			return true
		}
	}

	return false
}

// AddWidget activates a widget and gives it a default cell below the
// current layout. Adding an already active widget changes nothing.
func (b *Board) AddWidget(id string) {
	if b.has(id) {
		return
	}

	b.Widgets = append(b.Widgets, id)

	var maxY int

	for _, c := range b.Layout {
		if bottom := c.Y + c.H; bottom > maxY {
			maxY = bottom
		}
	}

	b.Layout = append(b.Layout, Cell{ID: id, X: 0, Y: maxY, W: defaultCellW, H: defaultCellH})
}

// RemoveWidget deactivates a widget and drops its cell. Removing an id that
// is not on the board changes nothing.
func (b *Board) RemoveWidget(id string) {
	if !b.has(id) {
		return
	}

	widgets := b.Widgets[:0]

	for _, w := range b.Widgets {
		if w != id {
			widgets = append(widgets, w)
		}
	}

	b.Widgets = widgets

	layout := b.Layout[:0]

	for _, c := range b.Layout {
		if c.ID != id {
			layout = append(layout, c)
		}
	}

	b.Layout = layout
}

// ActiveCells returns the layout restricted to active widgets. Stale cells
// can survive in a persisted layout; they are filtered here at render time
// rather than rewritten in place.
func (b *Board) ActiveCells() []Cell {
	active := make(map[string]bool, len(b.Widgets))

	for _, w := range b.Widgets {
		active[w] = true
	}

	cells := make([]Cell, 0, len(b.Layout))

	for _, c := range b.Layout {
		if active[c.ID] {
			cells = append(cells, c)
		}
	}

	return cells
}

// Breakpoint caps how many grid columns a viewport width gets.
type Breakpoint struct {
	Name string
	Cols int
}

var Breakpoints = []Breakpoint{
	{Name: "lg", Cols: 12},
	{Name: "md", Cols: 8},
	{Name: "sm", Cols: 4},
	{Name: "xs", Cols: 2},
}

// ClampForWidth narrows cells that overflow the breakpoint's column count.
// The result is display-only and never written back to the board.
func ClampForWidth(layout []Cell, bp Breakpoint) []Cell {
	clamped := make([]Cell, len(layout))

	for i, c := range layout {
		if c.W > bp.Cols {
			c.W = bp.Cols
		}

		if c.X+c.W > bp.Cols {
			c.X = bp.Cols - c.W
			if c.X < 0 {
				c.X = 0
			}
		}

		clamped[i] = c
	}

	return clamped
}
