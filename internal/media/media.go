package media

import (
	"errors"
	"time"

	"github.com/stackfield/crmd/internal/store"
)

var ErrNotFound = errors.New("media file not found")

type FileType string

const (
	TypeImage    FileType = "image"
	TypeVideo    FileType = "video"
	TypeDocument FileType = "document"
)

// File is an uploaded asset. The binary lives elsewhere; we keep the URL and
// the metadata the assistant fills in.
type File struct {
	ID          string
	TenantID    string
	URL         string
	Type        FileType
	Category    string
	Description string
	Tags        []string
	Notes       string

	SyncStatus store.SyncStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
