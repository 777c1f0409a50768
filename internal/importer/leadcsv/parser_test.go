package leadcsv_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfield/crmd/internal/importer/leadcsv"
	"github.com/stackfield/crmd/internal/lead"
)

func TestParseGeneric(t *testing.T) {
	input := strings.Join([]string{
		"Name,Email,Company,Phone,Score",
		"Dana Reyes,dana@acme.com,Acme,555-0101,72",
		"João Sá,joao@azores.pt,Açores Lda,,not-a-number",
		"",
	}, "\n")

	batch, err := leadcsv.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, batch, 2)

	assert.Equal(t, lead.CreateParams{
		Name:    "Dana Reyes",
		Email:   "dana@acme.com",
		Company: "Acme",
		Phone:   "555-0101",
		Score:   72,
	}, batch[0])

	// A bad score cell defaults to zero instead of failing the file.
	assert.Equal(t, "João Sá", batch[1].Name)
	assert.Equal(t, 0, batch[1].Score)
}

func TestParseHubspotLayout(t *testing.T) {
	input := strings.Join([]string{
		"First Name,Last Name,Email Address,Company Name,Phone Number,Lead Score",
		"Dana,Reyes,dana@acme.com,Acme,555-0101,140",
	}, "\n")

	batch, err := leadcsv.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, batch, 1)

	assert.Equal(t, "Dana Reyes", batch[0].Name)
	assert.Equal(t, "dana@acme.com", batch[0].Email)

	// Scores above the scale clamp to 100.
	assert.Equal(t, 100, batch[0].Score)
}

func TestParseSkipsBannerRows(t *testing.T) {
	input := strings.Join([]string{
		"Contacts exported 2026-08-12",
		"",
		"Name,Email,Company,Phone,Score",
		"Dana Reyes,dana@acme.com,Acme,,10",
	}, "\n")

	batch, err := leadcsv.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "Dana Reyes", batch[0].Name)
}

func TestParseNameFallsBackToEmail(t *testing.T) {
	input := strings.Join([]string{
		"Name,Email,Company,Phone,Score",
		",anon@acme.com,,,",
	}, "\n")

	batch, err := leadcsv.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "anon@acme.com", batch[0].Name)
}

func TestParseWindows1252Input(t *testing.T) {
	header := "Name,Email,Company,Phone,Score\n"

	// "João Sá" in Windows-1252: ã = 0xE3, á = 0xE1.
	row := []byte{'J', 'o', 0xE3, 'o', ' ', 'S', 0xE1, ',', 'j', '@', 'x', '.', 'p', 't', ',', ',', ',', '\n'}

	input := append([]byte(header), row...)

	batch, err := leadcsv.NewParser().Parse(strings.NewReader(string(input)))
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "João Sá", batch[0].Name)
}

func TestParseNoMatchingLayout(t *testing.T) {
	input := "Foo,Bar\n1,2\n"

	_, err := leadcsv.NewParser().Parse(strings.NewReader(input))
	assert.Error(t, err)
}
