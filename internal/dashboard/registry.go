package dashboard

import (
	"context"
	"fmt"
	"sort"
)

// Renderer produces a widget's display text for one tenant.
type Renderer func(ctx context.Context, tenantID string) (string, error)

// Registry resolves a catalog component key to its renderer. It is filled
// at startup and read-only afterwards.
type Registry struct {
	catalog   []CatalogEntry
	renderers map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

func (r *Registry) Register(entry CatalogEntry, render Renderer) {
	r.catalog = append(r.catalog, entry)
	r.renderers[entry.Component] = render
}

// Catalog returns the registered entries sorted by name.
func (r *Registry) Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, len(r.catalog))
	copy(entries, r.catalog)

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return entries
}

func (r *Registry) entryByID(id string) (CatalogEntry, bool) {
	for _, e := range r.catalog {
		if e.ID == id {
			return e, true
		}
	}

	return CatalogEntry{}, false
}

// Render resolves and runs the renderer for a widget id. An id with no
// catalog entry, or an entry whose component has no renderer, yields a
// placeholder instead of an error so one stale widget never takes the
// whole board down.
func (r *Registry) Render(ctx context.Context, tenantID, widgetID string) (string, error) {
	entry, ok := r.entryByID(widgetID)
	if !ok {
		return fmt.Sprintf("Unknown widget %q", widgetID), nil
	}

	render, ok := r.renderers[entry.Component]
	if !ok {
		return fmt.Sprintf("Widget %q has no renderer", entry.Name), nil
	}

	return render(ctx, tenantID)
}
