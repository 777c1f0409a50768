package leadcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/stackfield/crmd/internal/encoding"
	"github.com/stackfield/crmd/internal/lead"
)

// Parser reads lead CSV exports and produces lead create params. It
// auto-detects which source layout (hubspot, outlook, generic) is being
// used by matching column headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]lead.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching lead export layout: expected columns for hubspot, outlook, or generic")
	}

	return parseRows(profile, cols, rows[headerIdx+1:])
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile. Some
// exports put banner or summary lines above the header, so every row is a
// candidate until one matches.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string) ([]lead.CreateParams, error) {
	var batch []lead.CreateParams

	for _, row := range rows {
		name := parseName(p, cols, row)
		email := cellValue(row, colIdx(cols, p.EmailCol))

		// Rows with neither a name nor an email are separators or footers.
		if name == "" && email == "" {
			continue
		}

		if name == "" {
			name = email
		}

		batch = append(batch, lead.CreateParams{
			Name:    name,
			Email:   email,
			Company: cellValue(row, colIdx(cols, p.CompanyCol)),
			Phone:   cellValue(row, colIdx(cols, p.PhoneCol)),
			Score:   parseScore(cellValue(row, colIdx(cols, p.ScoreCol))),
		})
	}

	return batch, nil
}

func parseName(p *Profile, cols colIndex, row []string) string {
	switch p.NameMode {
	case nameSingle:
		return cellValue(row, colIdx(cols, p.NameCol))
	case nameSplit:
		first := cellValue(row, colIdx(cols, p.FirstCol))
		last := cellValue(row, colIdx(cols, p.LastCol))

		return strings.TrimSpace(first + " " + last)
	}

	return ""
}

// parseScore clamps out-of-range and unparseable scores to the valid range
// rather than failing the whole file on one bad cell.
func parseScore(s string) int {
	if s == "" {
		return 0
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	if n < 0 {
		return 0
	}

	if n > 100 {
		return 100
	}

	return n
}

// colIdx resolves an optional column, returning -1 when the profile does
// not define it or the header did not include it.
func colIdx(cols colIndex, name string) int {
	if name == "" {
		return -1
	}

	idx, ok := cols[name]
	if !ok {
		return -1
	}

	return idx
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
