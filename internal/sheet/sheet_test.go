package sheet

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = Table{
	Name:    "FAQ_Master",
	Columns: []string{"code", "title", "priority", "tags"},
	Rows: [][]any{
		{"FAQ-GT-001", "SkillUp Center là gì?", 10, "Quan trọng, Mới"},
		{"FAQ-HP-002", "Học phí, ưu đãi", 50, ""},
	},
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sample))

	rows, err := Read(&buf, FormatXLSX)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SkillUp Center là gì?", rows[0]["title"])
	assert.Equal(t, "10", rows[0]["priority"])
	assert.Equal(t, "Quan trọng, Mới", rows[0]["tags"])
	assert.Equal(t, "Học phí, ưu đãi", rows[1]["title"])
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sample))
	assert.True(t, strings.HasPrefix(buf.String(), "code,title,priority,tags\n"))

	rows, err := Read(&buf, FormatCSV)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Học phí, ưu đãi", rows[1]["title"])
	assert.Equal(t, "50", rows[1]["priority"])
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sample))

	rows, err := Read(&buf, FormatJSON)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, json.Number("10"), rows[0]["priority"])
	assert.Equal(t, "10", Text(rows[0]["priority"]))
}

func TestCSVSkipsBlankRowsAndBOM(t *testing.T) {
	in := "\ufefftitle,answer,\n\"A\",\"B\",ignored\n,,\n\"C\"\n"
	rows, err := Read(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"title": "A", "answer": "B"}, rows[0])
	assert.Equal(t, Row{"title": "C"}, rows[1])
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("this is not a workbook"), FormatXLSX)
	assert.Error(t, err)

	_, err = Read(strings.NewReader(`{"title":"not an array"}`), FormatJSON)
	assert.Error(t, err)

	_, err = Read(strings.NewReader("a,\"b\n"), FormatCSV)
	assert.Error(t, err)
}

func TestEmptyInputs(t *testing.T) {
	rows, err := Read(strings.NewReader(""), FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, rows)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, Table{Columns: []string{"title"}}))
	rows, err = Read(&buf, FormatXLSX)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/Master_Data.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	f, err = FormatFromPath("rows.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	_, err = FormatFromPath("rows.xls")
	assert.Error(t, err)
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, WriteFile(path, sample))
	rows, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "50", Text(50.0))
	assert.Equal(t, "2.5", Text(2.5))
	assert.Equal(t, "7", Text(int64(7)))
	assert.Equal(t, "true", Text(true))
	assert.Equal(t, "a, b, 3", Text([]any{"a", "b", json.Number("3")}))
}
