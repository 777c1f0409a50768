package store

import (
	"errors"
	"slices"
	"sync"
)

var ErrNotFound = errors.New("record not found")

// Collection is an ordered, mutex-guarded set of records with unique ids.
// Mutations apply immediately (optimistic); persistence is the caller's
// concern. Lookups are linear scans, which is fine at UI scale.
//
// The mutex exists because, unlike the browser original, multiple goroutines
// (HTTP handlers, the syncer, the TUI event loop) touch the same collection.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T

	id      func(T) string
	setSync func(T, SyncStatus) T
}

// NewCollection builds a collection from an id extractor and a sync-status
// setter. Both operate on values; records are copied in and out.
func NewCollection[T any](id func(T) string, setSync func(T, SyncStatus) T) *Collection[T] {
	return &Collection[T]{id: id, setSync: setSync}
}

// Add inserts the record, or replaces an existing record with the same id in
// place. The upsert behaviour keeps the "one entry per unique id" invariant
// even if a caller adds twice.
func (c *Collection[T]) Add(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(c.id(rec)); i >= 0 {
		c.items[i] = rec
		return
	}

	c.items = append(c.items, rec)
}

// Update replaces the record whose id matches, preserving order.
func (c *Collection[T]) Update(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(c.id(rec))
	if i < 0 {
		return ErrNotFound
	}

	c.items[i] = rec

	return nil
}

// Remove deletes the record with the given id. Removing an absent id is a
// no-op.
func (c *Collection[T]) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
}

// Replace swaps the record stored under oldID (typically a temp id) for the
// server-confirmed one, keeping its position in the collection.
func (c *Collection[T]) Replace(oldID string, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(oldID)
	if i < 0 {
		return ErrNotFound
	}

	c.items[i] = rec

	return nil
}

// MarkSync flips the sync status of the record with the given id, leaving
// every other field as the optimistic value.
func (c *Collection[T]) MarkSync(id string, status SyncStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	c.items[i] = c.setSync(c.items[i], status)

	return nil
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}

	var zero T

	return zero, false
}

// List returns a copy of the collection in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.items)
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Reset replaces the whole collection, e.g. on hydration from the database.
func (c *Collection[T]) Reset(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = slices.Clone(items)
}

// indexOf is a linear scan; callers hold the lock.
func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if c.id(item) == id {
			return i
		}
	}

	return -1
}
