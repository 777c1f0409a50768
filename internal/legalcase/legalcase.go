package legalcase

import (
	"errors"
	"time"

	"github.com/stackfield/crmd/internal/store"
)

var (
	ErrNotFound      = errors.New("case not found")
	ErrUnknownStatus = errors.New("unknown case status")
)

// Status tracks a legal matter through its lifecycle.
type Status string

const (
	StatusIntake     Status = "Intake"
	StatusDiscovery  Status = "Discovery"
	StatusInTrial    Status = "InTrial"
	StatusOnHold     Status = "OnHold"
	StatusClosedWon  Status = "ClosedWon"
	StatusClosedLost Status = "ClosedLost"
)

func (s Status) Valid() bool {
	switch s {
	case StatusIntake, StatusDiscovery, StatusInTrial, StatusOnHold, StatusClosedWon, StatusClosedLost:
		return true
	}

	return false
}

// Party is a free-form contact block for one side of a matter.
type Party struct {
	Name    string
	Email   string
	Phone   string
	Counsel string
}

// Note is an attorney note on a case. Notes are append-only.
type Note struct {
	ID        string
	CaseID    string
	Author    string
	Body      string
	CreatedAt time.Time
}

// HistoryEntry records a status change. History is append-only and never
// rewritten.
type HistoryEntry struct {
	ID        string
	CaseID    string
	From      Status
	To        Status
	Actor     string
	CreatedAt time.Time
}

// Case is a legal matter handled for a tenant.
type Case struct {
	ID         string
	TenantID   string
	Title      string
	Status     Status
	AttorneyID string
	Defendant  Party
	Opposition Party

	Notes   []Note
	History []HistoryEntry

	SyncStatus store.SyncStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
