package view

import (
	"context"
	"time"

	"github.com/stackfield/crmd/internal/store"
)

const dbTimeout = 5 * time.Second

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// SyncBadge renders a record's sync status for a table cell. Synced records
// show nothing; the badge only marks writes still in flight or failed.
func SyncBadge(s store.SyncStatus) string {
	switch s {
	case store.SyncPending:
		return "~"
	case store.SyncError:
		return "!"
	}

	return ""
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
