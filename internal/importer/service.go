package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/stackfield/crmd/internal/importer/leadcsv"
	"github.com/stackfield/crmd/internal/lead"
)

// Format names a supported upload format.
type Format string

const (
	FormatCSV Format = "csv"
)

type LeadImporter interface {
	ImportBatch(ctx context.Context, tenantID string, batch []lead.CreateParams) (*lead.ImportResult, error)
}

type Service struct {
	csvParser Parser
	leads     LeadImporter
}

func NewService(leads LeadImporter) *Service {
	return &Service{
		csvParser: leadcsv.NewParser(),
		leads:     leads,
	}
}

// Import parses the upload and hands the rows to the lead service in one
// batch so duplicate detection sees the whole file.
func (s *Service) Import(ctx context.Context, tenantID string, format Format, r io.Reader) (*lead.ImportResult, error) {
	var parser Parser

	switch format {
	case FormatCSV:
		parser = s.csvParser
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	batch, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing upload: %w", err)
	}

	return s.leads.ImportBatch(ctx, tenantID, batch)
}
