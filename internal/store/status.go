// Package store provides the in-memory entity cache shared by the API and
// TUI frontends: typed collections with optimistic mutation, a per-record
// sync status, and a background syncer that writes changes behind.
package store

import (
	"strings"

	"github.com/google/uuid"
)

// SyncStatus tracks whether a record's last local change has been persisted.
// The zero value is treated as synced; rows loaded from the database never
// carry a pending tag.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncError   SyncStatus = "error"
)

const tempPrefix = "temp-"

// TempID synthesizes a client-side id for an optimistic insert. The server
// id replaces it once the write lands.
func TempID() string {
	return tempPrefix + uuid.NewString()
}

// IsTempID reports whether the id was synthesized by TempID.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempPrefix)
}
