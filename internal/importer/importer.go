package importer

import (
	"io"

	"github.com/stackfield/crmd/internal/lead"
)

// Parser turns an uploaded file into lead create params.
type Parser interface {
	Parse(r io.Reader) ([]lead.CreateParams, error)
}
