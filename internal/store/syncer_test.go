package store_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/store"
)

func TestSyncer_RunsJobsInOrder(t *testing.T) {
	s := store.NewSyncer(16)
	s.Start()

	defer s.Close()

	var order []int

	for i := range 5 {
		err := s.Enqueue(func(context.Context) error {
			order = append(order, i)
			return nil
		}, nil)
		require.NoError(t, err)
	}

	s.Flush()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSyncer_FailureFlipsStatusToError(t *testing.T) {
	c := newCollection()
	c.Add(record{ID: "a", Name: "optimistic value", Sync: store.SyncPending})

	s := store.NewSyncer(4)
	s.Start()

	defer s.Close()

	err := s.Enqueue(
		func(context.Context) error { return errors.New("db down") },
		func(err error) {
			if err != nil {
				_ = c.MarkSync("a", store.SyncError)
			}
		},
	)
	require.NoError(t, err)

	s.Flush()

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, store.SyncError, got.Sync)
	// The optimistic value stays; there is no rollback.
	assert.Equal(t, "optimistic value", got.Name)
}

func TestSyncer_QueueFull(t *testing.T) {
	s := store.NewSyncer(1)
	// Worker not started, so the single slot fills up.
	require.NoError(t, s.Enqueue(func(context.Context) error { return nil }, nil))

	err := s.Enqueue(func(context.Context) error { return nil }, nil)
	assert.ErrorIs(t, err, store.ErrQueueFull)

	s.Start()
	s.Flush()
	s.Close()
}

func TestSyncer_CloseDrainsQueue(t *testing.T) {
	var ran atomic.Int32

	s := store.NewSyncer(8)

	for range 3 {
		require.NoError(t, s.Enqueue(func(context.Context) error {
			ran.Add(1)
			return nil
		}, nil))
	}

	s.Start()
	s.Close()

	assert.Equal(t, int32(3), ran.Load())
}
