package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r so that whatever a CRM or spreadsheet exported, the
// caller reads clean UTF-8. Uploads arrive as UTF-8 with or without BOM, as
// UTF-16 from Excel, or in a legacy single-byte codepage.
//
// Detection order: BOM, UTF-8 validity, chardet heuristics, Windows-1252
// as the last resort.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peeking input: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))

		return br, nil
	}

	if bytes.HasPrefix(head, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(head, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if cm := detectCharmap(head); cm != nil {
		return transform.NewReader(br, cm.NewDecoder()), nil
	}

	// Windows-1252 decodes every byte, so this never fails outright. Worst
	// case the user sees a few odd characters instead of an import error.
	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

func detectCharmap(head []byte) *charmap.Charmap {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return nil
	}

	switch result.Charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-15":
		return charmap.ISO8859_15
	case "ISO-8859-9":
		return charmap.ISO8859_9
	}

	return nil
}
