package contact

import (
	"errors"
	"time"

	"github.com/stackfield/crmd/internal/store"
)

var ErrNotFound = errors.New("contact not found")

// Contact is a person record, created directly or derived from a converted
// lead. Email is the dedup key for lead conversion.
type Contact struct {
	ID       string
	TenantID string
	Name     string
	Email    string
	Company  string
	Title    string
	Avatar   string
	Phone    string
	Address  string

	SyncStatus store.SyncStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
