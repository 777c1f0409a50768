package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var ErrQueueFull = errors.New("sync queue full")

const defaultJobTimeout = 30 * time.Second

type job struct {
	run  func(ctx context.Context) error
	done func(err error)
}

// Syncer drains queued persistence jobs on a single worker goroutine, so
// writes reach the database in the order the mutators applied them. A failed
// job reports its error to the done callback (which flips the record to
// SyncError) and the queue moves on; there is no retry.
type Syncer struct {
	jobs    chan job
	wg      sync.WaitGroup
	timeout time.Duration

	startOnce sync.Once
	stop      chan struct{}
	stopped   sync.WaitGroup
}

func NewSyncer(queueSize int) *Syncer {
	if queueSize <= 0 {
		queueSize = 64
	}

	return &Syncer{
		jobs:    make(chan job, queueSize),
		timeout: defaultJobTimeout,
		stop:    make(chan struct{}),
	}
}

// Start launches the worker. Calling Start more than once is a no-op.
func (s *Syncer) Start() {
	s.startOnce.Do(func() {
		s.stopped.Add(1)

		go s.loop()
	})
}

func (s *Syncer) loop() {
	defer s.stopped.Done()

	for {
		select {
		case j := <-s.jobs:
			s.runJob(j)
		case <-s.stop:
			// Drain whatever is queued before exiting.
			for {
				select {
				case j := <-s.jobs:
					s.runJob(j)
				default:
					return
				}
			}
		}
	}
}

func (s *Syncer) runJob(j job) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := j.run(ctx)
	if err != nil {
		slog.Error("sync job failed", "error", err)
	}

	if j.done != nil {
		j.done(err)
	}
}

// Enqueue schedules a persistence job. run performs the write; done receives
// its result (nil on success). Returns ErrQueueFull when the backlog is at
// capacity rather than blocking a UI mutator.
func (s *Syncer) Enqueue(run func(ctx context.Context) error, done func(err error)) error {
	s.wg.Add(1)

	select {
	case s.jobs <- job{run: run, done: done}:
		return nil
	default:
		s.wg.Done()
		return ErrQueueFull
	}
}

// Flush blocks until every enqueued job has completed.
func (s *Syncer) Flush() {
	s.wg.Wait()
}

// Close flushes outstanding jobs and stops the worker.
func (s *Syncer) Close() {
	s.wg.Wait()
	close(s.stop)
	s.stopped.Wait()
}
