package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/store"
)

func recordFuncs() store.Funcs[record] {
	return store.Funcs[record]{
		ID: func(r record) string { return r.ID },
		SetID: func(r record, id string) record {
			r.ID = id
			return r
		},
		SetSync: func(r record, s store.SyncStatus) record {
			r.Sync = s
			return r
		},
	}
}

func TestCached_CreateConfirmsServerID(t *testing.T) {
	s := store.NewSyncer(8)
	s.Start()

	defer s.Close()

	cache := store.NewCached(s, recordFuncs(), store.Persist[record]{
		Create: func(_ context.Context, rec record) (record, error) {
			rec.ID = "server-1"
			return rec, nil
		},
	})

	rec := cache.Create(record{Name: "typed by user"})

	// Optimistic view: temp id, pending, user fields intact.
	assert.True(t, store.IsTempID(rec.ID))
	assert.Equal(t, store.SyncPending, rec.Sync)
	assert.Equal(t, "typed by user", rec.Name)

	s.Flush()

	items := cache.List()
	require.Len(t, items, 1)
	assert.Equal(t, "server-1", items[0].ID)
	assert.Equal(t, store.SyncSynced, items[0].Sync)
	assert.Equal(t, "typed by user", items[0].Name)
}

func TestCached_CreateFailureKeepsOptimisticValue(t *testing.T) {
	s := store.NewSyncer(8)
	s.Start()

	defer s.Close()

	cache := store.NewCached(s, recordFuncs(), store.Persist[record]{
		Create: func(_ context.Context, rec record) (record, error) {
			return record{}, errors.New("insert failed")
		},
	})

	rec := cache.Create(record{Name: "still here"})
	s.Flush()

	got, ok := cache.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, store.SyncError, got.Sync)
	assert.Equal(t, "still here", got.Name)
}

func TestCached_UpdateFlipsToSynced(t *testing.T) {
	s := store.NewSyncer(8)
	s.Start()

	defer s.Close()

	var persisted record

	cache := store.NewCached(s, recordFuncs(), store.Persist[record]{
		Update: func(_ context.Context, rec record) error {
			persisted = rec
			return nil
		},
	})

	require.NoError(t, cache.Load(context.Background(), func(context.Context) ([]record, error) {
		return []record{{ID: "a", Name: "before"}}, nil
	}))

	require.NoError(t, cache.Update(record{ID: "a", Name: "after"}))
	s.Flush()

	got, _ := cache.Get("a")
	assert.Equal(t, "after", got.Name)
	assert.Equal(t, store.SyncSynced, got.Sync)
	assert.Equal(t, "after", persisted.Name)

	assert.ErrorIs(t, cache.Update(record{ID: "missing"}), store.ErrNotFound)
}

func TestCached_DeleteSkipsBackendForTempIDs(t *testing.T) {
	s := store.NewSyncer(8)
	s.Start()

	defer s.Close()

	var removed []string

	cache := store.NewCached(s, recordFuncs(), store.Persist[record]{
		Create: func(_ context.Context, rec record) (record, error) {
			return record{}, errors.New("never lands")
		},
		Remove: func(_ context.Context, id string) error {
			removed = append(removed, id)
			return nil
		},
	})

	rec := cache.Create(record{Name: "ephemeral"})
	s.Flush()

	cache.Delete(rec.ID)
	s.Flush()

	assert.Equal(t, 0, cache.Len())
	assert.Empty(t, removed, "temp-id records never reached the backend")

	require.NoError(t, cache.Load(context.Background(), func(context.Context) ([]record, error) {
		return []record{{ID: "srv-1"}}, nil
	}))

	cache.Delete("srv-1")
	s.Flush()

	assert.Equal(t, []string{"srv-1"}, removed)
}

func TestCached_UpdateSnapshotsRecord(t *testing.T) {
	s := store.NewSyncer(8)
	s.Start()

	defer s.Close()

	persisted := make(chan record, 1)

	cache := store.NewCached(s, recordFuncs(), store.Persist[record]{
		Update: func(_ context.Context, rec record) error {
			persisted <- rec
			return nil
		},
	})

	require.NoError(t, cache.Load(context.Background(), func(context.Context) ([]record, error) {
		return []record{{ID: "r1", Name: "v0"}}, nil
	}))

	rec, ok := cache.Get("r1")
	require.True(t, ok)

	rec.Name = "v1"
	require.NoError(t, cache.Update(rec))

	// Editing the snapshot after queueing must not reach the in-flight
	// write or the cached record.
	rec.Name = "never persisted"

	s.Flush()

	got := <-persisted
	assert.Equal(t, "v1", got.Name)

	cached, ok := cache.Get("r1")
	require.True(t, ok)
	assert.Equal(t, "v1", cached.Name)
	assert.Equal(t, store.SyncSynced, cached.Sync)
}

func TestCached_ConcurrentEditsLastWriteWins(t *testing.T) {
	const edits = 32

	s := store.NewSyncer(edits)
	s.Start()

	defer s.Close()

	var (
		mu   sync.Mutex
		seen []string
	)

	cache := store.NewCached(s, recordFuncs(), store.Persist[record]{
		Update: func(_ context.Context, rec record) error {
			mu.Lock()
			seen = append(seen, rec.Name)
			mu.Unlock()

			return nil
		},
	})

	require.NoError(t, cache.Load(context.Background(), func(context.Context) ([]record, error) {
		return []record{{ID: "r1", Name: "v0"}}, nil
	}))

	// Get-mutate-Update in a tight loop while the syncer drains: the
	// behaviour the console's edit flow exercises against a live queue.
	done := make(chan struct{})
	go func() {
		defer close(done)

		for i := range edits {
			rec, ok := cache.Get("r1")
			if !ok {
				continue
			}

			rec.Name = fmt.Sprintf("edit-%d", i)
			_ = cache.Update(rec)
		}
	}()

	<-done
	s.Flush()

	cached, ok := cache.Get("r1")
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("edit-%d", edits-1), cached.Name)
	assert.Equal(t, store.SyncSynced, cached.Sync)

	mu.Lock()
	defer mu.Unlock()

	require.NotEmpty(t, seen)
	assert.Equal(t, fmt.Sprintf("edit-%d", edits-1), seen[len(seen)-1])
}
