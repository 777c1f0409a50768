package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/store"
)

type record struct {
	ID   string
	Name string
	Sync store.SyncStatus
}

func newCollection() *store.Collection[record] {
	return store.NewCollection(
		func(r record) string { return r.ID },
		func(r record, s store.SyncStatus) record {
			r.Sync = s
			return r
		},
	)
}

func TestCollection_OneEntryPerID(t *testing.T) {
	c := newCollection()

	c.Add(record{ID: "a", Name: "first"})
	c.Add(record{ID: "b", Name: "second"})
	c.Add(record{ID: "a", Name: "first again"})

	require.NoError(t, c.Update(record{ID: "b", Name: "second updated"}))

	items := c.List()
	require.Len(t, items, 2)
	assert.Equal(t, "first again", items[0].Name)
	assert.Equal(t, "second updated", items[1].Name)
}

func TestCollection_UpdateMissing(t *testing.T) {
	c := newCollection()

	err := c.Update(record{ID: "nope"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCollection_RemoveMissingIsNoop(t *testing.T) {
	c := newCollection()
	c.Add(record{ID: "a"})

	c.Remove("missing")
	assert.Equal(t, 1, c.Len())

	c.Remove("a")
	assert.Equal(t, 0, c.Len())

	c.Remove("a")
	assert.Equal(t, 0, c.Len())
}

func TestCollection_OrderPreservedOnUpdate(t *testing.T) {
	c := newCollection()

	for _, id := range []string{"a", "b", "c"} {
		c.Add(record{ID: id})
	}

	require.NoError(t, c.Update(record{ID: "b", Name: "middle"}))

	items := c.List()
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "middle", items[1].Name)
}

func TestCollection_ReplaceKeepsPositionAndFields(t *testing.T) {
	c := newCollection()

	tempID := store.TempID()
	require.True(t, store.IsTempID(tempID))

	c.Add(record{ID: "a"})
	c.Add(record{ID: tempID, Name: "typed by user", Sync: store.SyncPending})
	c.Add(record{ID: "c"})

	confirmed := record{ID: "server-id", Name: "typed by user", Sync: store.SyncSynced}
	require.NoError(t, c.Replace(tempID, confirmed))

	items := c.List()
	require.Len(t, items, 3)
	assert.Equal(t, confirmed, items[1])

	_, ok := c.Get(tempID)
	assert.False(t, ok)
}

func TestCollection_MarkSync(t *testing.T) {
	c := newCollection()
	c.Add(record{ID: "a", Name: "keep me", Sync: store.SyncPending})

	require.NoError(t, c.MarkSync("a", store.SyncError))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, store.SyncError, got.Sync)
	assert.Equal(t, "keep me", got.Name)

	assert.ErrorIs(t, c.MarkSync("missing", store.SyncSynced), store.ErrNotFound)
}

func TestCollection_ListIsACopy(t *testing.T) {
	c := newCollection()
	c.Add(record{ID: "a", Name: "original"})

	items := c.List()
	items[0].Name = "mutated"

	got, _ := c.Get("a")
	assert.Equal(t, "original", got.Name)
}
