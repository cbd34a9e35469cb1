// Package sheet reads and writes tabular files: XLSX workbooks, CSV and JSON
// arrays of objects. Only the first worksheet of a workbook is read and its
// first row is the header.
package sheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Row is one record keyed by column header.
type Row map[string]any

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported file type %q (use .xlsx, .csv or .json)", filepath.Ext(path))
}

// Read parses every data row of r.
func Read(r io.Reader, format Format) ([]Row, error) {
	switch format {
	case FormatXLSX:
		return readXLSX(r)
	case FormatCSV:
		return readCSV(r)
	case FormatJSON:
		return readJSON(r)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// ReadFile opens path and reads it in the format its extension implies.
func ReadFile(path string) ([]Row, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, format)
}

// Table is a header plus data rows, ready to be written.
type Table struct {
	// Name is the worksheet name. Ignored by CSV and JSON.
	Name    string
	Columns []string
	Rows    [][]any
}

// Write encodes t to w.
func Write(w io.Writer, format Format, t Table) error {
	switch format {
	case FormatXLSX:
		return writeXLSX(w, t)
	case FormatCSV:
		return writeCSV(w, t)
	case FormatJSON:
		return writeJSON(w, t)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// WriteFile creates path and writes t in the format its extension implies.
func WriteFile(path string, t Table) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, format, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// record builds a Row from a header and the cells under it. Cells past the
// header and columns with an empty header are dropped. ok is false when every
// cell is blank.
func record(header, cells []string) (Row, bool) {
	row := Row{}
	blank := true
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" || i >= len(cells) {
			continue
		}
		row[h] = cells[i]
		if strings.TrimSpace(cells[i]) != "" {
			blank = false
		}
	}
	return row, !blank
}
