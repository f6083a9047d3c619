package services

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestParseCSVRowsCommaDelimited(t *testing.T) {
	input := "Team,Player 1,Player 2\nLos Vetustas,Ana,Bea\nPelotazo,Carlos,Diego\n"

	rows, err := parseCSVRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Los Vetustas", rows[0].TeamName)
	assert.Equal(t, []string{"Ana", "Bea"}, rows[0].Players)
	assert.Equal(t, "Pelotazo", rows[1].TeamName)
}

func TestParseCSVRowsSemicolonDelimited(t *testing.T) {
	input := "Los Vetustas;Ana;Bea\nPelotazo;Carlos;Diego\n"

	rows, err := parseCSVRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Carlos", "Diego"}, rows[1].Players)
}

func TestParseCSVRowsRaggedRecords(t *testing.T) {
	input := "Solo Team\nFull Team,One,Two,Three\n"

	rows, err := parseCSVRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Empty(t, rows[0].Players)
	assert.Len(t, rows[1].Players, 3)
}

func TestRecordsToRowsSkipsBlanks(t *testing.T) {
	records := [][]string{
		{"TEAM", "Player 1"},
		{"  Los Vetustas  ", " Ana ", ""},
		{""},
		{},
		{"Pelotazo"},
	}

	rows := recordsToRows(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "Los Vetustas", rows[0].TeamName)
	assert.Equal(t, []string{"Ana"}, rows[0].Players)
	assert.Equal(t, "Pelotazo", rows[1].TeamName)
	assert.Empty(t, rows[1].Players)
}

func TestRecordsToRowsHeaderOnlyFirstRow(t *testing.T) {
	// A team literally named "team" below the first row must survive.
	records := [][]string{
		{"team", "Player 1"},
		{"team", "Ana"},
	}

	rows := recordsToRows(records)
	require.Len(t, rows, 1)
	assert.Equal(t, "team", rows[0].TeamName)
}

func TestParseXLSXRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Team", "Player 1", "Player 2"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Los Vetustas", "Ana", "Bea"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	rows, err := parseXLSXRows(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Los Vetustas", rows[0].TeamName)
	assert.Equal(t, []string{"Ana", "Bea"}, rows[0].Players)
}

func TestParseXLSXRowsGarbage(t *testing.T) {
	_, err := parseXLSXRows([]byte("not a zip archive"))
	assert.Error(t, err)
}

func TestParseImportFileCSV(t *testing.T) {
	header := multipartFile(t, "equipos.CSV", []byte("Team,Player 1\nLos Vetustas,Ana\n"))

	rows, err := parseImportFile(header)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Los Vetustas", rows[0].TeamName)
}

func TestParseImportFileUnsupportedExtension(t *testing.T) {
	header := multipartFile(t, "equipos.txt", []byte("whatever"))

	_, err := parseImportFile(header)
	assert.ErrorIs(t, err, ErrImportUnsupportedFile)
}
