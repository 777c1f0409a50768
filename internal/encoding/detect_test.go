package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8ReaderPassthrough(t *testing.T) {
	input := "Name,Email,Company\nJoão Sá,joao@example.com,Açores Lda\n"

	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8ReaderStripsBOM(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := "Name,Email\nDana,dana@example.com\n"

	assert.Equal(t, content, decode(t, append(bom, content...)))
}

func TestNewUTF8ReaderUTF16(t *testing.T) {
	// "Name\n" as UTF-16 LE with BOM, the default for Excel "Unicode Text".
	input := []byte{0xFF, 0xFE, 'N', 0, 'a', 0, 'm', 0, 'e', 0, '\n', 0}

	assert.Equal(t, "Name\n", decode(t, input))
}

func TestNewUTF8ReaderWindows1252(t *testing.T) {
	// "João" in Windows-1252: ã = 0xE3.
	input := []byte{'J', 'o', 0xE3, 'o', ',', 'j', '@', 'x', '.', 'c', 'o', 'm', '\n'}

	assert.Equal(t, "João,j@x.com\n", decode(t, input))
}
