package lead

import (
	"errors"
	"time"

	"github.com/stackfield/crmd/internal/store"
)

var (
	ErrNotFound         = errors.New("lead not found")
	ErrTerminalStatus   = errors.New("lead is in a terminal status")
	ErrAlreadyConverted = errors.New("lead already converted")
	ErrInvalidScore     = errors.New("score must be between 0 and 100")
)

// Status is the lead lifecycle state. Converted and Lost are terminal.
type Status string

const (
	StatusNew       Status = "New"
	StatusContacted Status = "Contacted"
	StatusQualified Status = "Qualified"
	StatusLost      Status = "Lost"
	StatusConverted Status = "Converted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusLost, StatusConverted:
		return true
	}

	return false
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusConverted || s == StatusLost
}

// Lead is a prospective customer. Conversion turns it into a contact and
// optionally an opportunity; the back-references record where it went.
type Lead struct {
	ID            string
	TenantID      string
	Name          string
	Company       string
	Email         string
	Phone         string
	Score         int // 0-100
	Status        Status
	LastContacted string // display string, e.g. "2 days ago"
	ContactID     *string
	OpportunityID *string

	SyncStatus store.SyncStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
