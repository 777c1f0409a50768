package opportunity

import (
	"errors"
	"time"

	"github.com/stackfield/crmd/internal/store"
)

var (
	ErrNotFound     = errors.New("opportunity not found")
	ErrClosedStage  = errors.New("opportunity is closed")
	ErrUnknownStage = errors.New("unknown stage")
)

// Stage is a step in the fixed sales pipeline.
type Stage string

const (
	StageProspecting   Stage = "Prospecting"
	StageQualification Stage = "Qualification"
	StageProposal      Stage = "Proposal"
	StageNegotiation   Stage = "Negotiation"
	StageClosedWon     Stage = "ClosedWon"
	StageClosedLost    Stage = "ClosedLost"
)

// Pipeline lists the stages in order, open stages first.
var Pipeline = []Stage{
	StageProspecting,
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

func (s Stage) Valid() bool {
	for _, stage := range Pipeline {
		if s == stage {
			return true
		}
	}

	return false
}

// Closed reports whether the stage is terminal.
func (s Stage) Closed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// Opportunity is a deal in the pipeline, owned by a contact.
type Opportunity struct {
	ID        string
	TenantID  string
	Title     string
	ContactID string
	Value     int64 // Value in cents
	Stage     Stage
	CloseDate *time.Time

	SyncStatus store.SyncStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// StageSummary aggregates the pipeline for the dashboard widget.
type StageSummary struct {
	Stage Stage
	Count int
	Value int64
}

// Summarize buckets opportunities by stage in pipeline order. Stages with no
// opportunities still appear with zero counts.
func Summarize(opps []*Opportunity) []StageSummary {
	byStage := make(map[Stage]*StageSummary, len(Pipeline))
	out := make([]StageSummary, len(Pipeline))

	for i, stage := range Pipeline {
		out[i] = StageSummary{Stage: stage}
		byStage[stage] = &out[i]
	}

	for _, o := range opps {
		s, ok := byStage[o.Stage]
		if !ok {
			continue
		}

		s.Count++
		s.Value += o.Value
	}

	return out
}
