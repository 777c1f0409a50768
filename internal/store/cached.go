package store

import "context"

// Funcs adapts an entity type to the cache: id access and the two field
// setters the optimistic flow needs.
//
// T must be a plain value type, not a pointer. Setters take and return
// copies, and Get/List hand out copies, so the collection, its callers, and
// queued persistence closures never share memory. A pointer element type
// would alias every snapshot and let a caller mutate a record the syncer
// goroutine is reading.
type Funcs[T any] struct {
	ID      func(T) string
	SetID   func(T, string) T
	SetSync func(T, SyncStatus) T
}

// Persist supplies the write-behind operations. Create returns the
// server-confirmed record (real id, timestamps); Update and Remove report
// only success or failure.
type Persist[T any] struct {
	Create func(ctx context.Context, rec T) (T, error)
	Update func(ctx context.Context, rec T) error
	Remove func(ctx context.Context, id string) error
}

// Cached wraps a Collection with optimistic mutation: every write applies to
// the in-memory collection immediately and is queued on the syncer. Success
// flips the record to SyncSynced (swapping the temp id for the server id on
// create); failure flips it to SyncError and leaves the optimistic value in
// place. There is no rollback and no retry queue; a stuck error tag is
// resolved by the user redoing the action or reloading.
//
// Two rapid edits to the same record are last-write-wins, both locally and
// at the database.
type Cached[T any] struct {
	col     *Collection[T]
	syncer  *Syncer
	fn      Funcs[T]
	persist Persist[T]
}

func NewCached[T any](syncer *Syncer, fn Funcs[T], persist Persist[T]) *Cached[T] {
	return &Cached[T]{
		col:     NewCollection(fn.ID, fn.SetSync),
		syncer:  syncer,
		fn:      fn,
		persist: persist,
	}
}

// Load hydrates the collection from the backend, replacing local state.
func (c *Cached[T]) Load(ctx context.Context, fetch func(ctx context.Context) ([]T, error)) error {
	items, err := fetch(ctx)
	if err != nil {
		return err
	}

	c.col.Reset(items)

	return nil
}

// Create inserts the record optimistically under a temp id and queues the
// real insert. The returned record is what the UI should render right away.
func (c *Cached[T]) Create(rec T) T {
	tempID := TempID()
	rec = c.fn.SetID(rec, tempID)
	rec = c.fn.SetSync(rec, SyncPending)

	c.col.Add(rec)

	err := c.syncer.Enqueue(
		func(ctx context.Context) error {
			confirmed, err := c.persist.Create(ctx, rec)
			if err != nil {
				return err
			}

			return c.col.Replace(tempID, c.fn.SetSync(confirmed, SyncSynced))
		},
		func(err error) {
			if err != nil {
				_ = c.col.MarkSync(tempID, SyncError)
			}
		},
	)
	if err != nil {
		_ = c.col.MarkSync(tempID, SyncError)
	}

	return rec
}

// Update replaces the record optimistically and queues the write.
func (c *Cached[T]) Update(rec T) error {
	id := c.fn.ID(rec)

	rec = c.fn.SetSync(rec, SyncPending)
	if err := c.col.Update(rec); err != nil {
		return err
	}

	err := c.syncer.Enqueue(
		func(ctx context.Context) error {
			return c.persist.Update(ctx, rec)
		},
		func(err error) {
			status := SyncSynced
			if err != nil {
				status = SyncError
			}

			_ = c.col.MarkSync(id, status)
		},
	)
	if err != nil {
		_ = c.col.MarkSync(id, SyncError)
	}

	return nil
}

// Delete removes the record optimistically. A failed remote delete has
// nothing left to tag, so the error is only logged by the syncer. Records
// that never left this process (temp id) skip the backend call entirely.
func (c *Cached[T]) Delete(id string) {
	c.col.Remove(id)

	if IsTempID(id) {
		return
	}

	_ = c.syncer.Enqueue(
		func(ctx context.Context) error {
			return c.persist.Remove(ctx, id)
		},
		nil,
	)
}

// Get returns the record with the given id.
func (c *Cached[T]) Get(id string) (T, bool) { return c.col.Get(id) }

// List returns a copy of the cached records in insertion order.
func (c *Cached[T]) List() []T { return c.col.List() }

// Len returns the number of cached records.
func (c *Cached[T]) Len() int { return c.col.Len() }
