package activity

import (
	"context"
	"log/slog"
	"time"
)

// Entry is one line in the append-only activity feed.
type Entry struct {
	ID         string
	TenantID   string
	EntityKind string
	EntityID   string
	Verb       string
	Actor      string
	OccurredAt time.Time
}

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	Recent(ctx context.Context, tenantID string, limit int) ([]*Entry, error)
}

// Recorder is the write side handed to feature services. Failures to record
// an entry never fail the mutation that produced it, so Record logs instead
// of returning an error.
type Recorder struct {
	repo Repository
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, tenantID, entityKind, entityID, verb, actor string) {
	err := r.repo.Append(ctx, &Entry{
		TenantID:   tenantID,
		EntityKind: entityKind,
		EntityID:   entityID,
		Verb:       verb,
		Actor:      actor,
		OccurredAt: time.Now(),
	})
	if err != nil {
		slog.Warn("recording activity", "kind", entityKind, "verb", verb, "error", err)
	}
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Recent(ctx context.Context, tenantID string, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.repo.Recent(ctx, tenantID, limit)
}
