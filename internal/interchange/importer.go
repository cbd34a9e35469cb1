package interchange

import (
	"context"
	"fmt"
	"io"

	"github.com/rcliao/faq-catalog/internal/model"
	"github.com/rcliao/faq-catalog/internal/sheet"
)

// Level classifies an import log line.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// LogEntry is one line of an import log.
type LogEntry struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Report is the outcome of importing one file.
type Report struct {
	Imported []model.Entry `json:"imported"`
	Log      []LogEntry    `json:"log"`
}

// Sink receives a normalized batch. *catalog.Catalog satisfies it.
type Sink interface {
	Import(ctx context.Context, batch []model.Entry) ([]model.Entry, error)
}

// Importer reads tabular files, normalizes every row and hands the batch to
// a Sink in one call.
type Importer struct {
	Normalizer *Normalizer
	Sink       Sink
}

// ImportFile imports path, choosing the reader from its extension.
func (im *Importer) ImportFile(ctx context.Context, path string) (Report, error) {
	rows, err := sheet.ReadFile(path)
	if err != nil {
		return malformed(err)
	}
	return im.importRows(ctx, rows)
}

// ImportReader imports r in the given format.
func (im *Importer) ImportReader(ctx context.Context, r io.Reader, format sheet.Format) (Report, error) {
	rows, err := sheet.Read(r, format)
	if err != nil {
		return malformed(err)
	}
	return im.importRows(ctx, rows)
}

func malformed(err error) (Report, error) {
	return Report{
		Imported: []model.Entry{},
		Log:      []LogEntry{{Level: LevelError, Message: "cannot read file as a table, check the format: " + err.Error()}},
	}, fmt.Errorf("%w: %v", model.ErrMalformedImport, err)
}

func (im *Importer) importRows(ctx context.Context, rows []sheet.Row) (Report, error) {
	rep := Report{Imported: []model.Entry{}, Log: []LogEntry{}}
	if len(rows) == 0 {
		rep.Log = append(rep.Log, LogEntry{Level: LevelInfo, Message: "no rows found"})
		return rep, nil
	}

	batch := make([]model.Entry, len(rows))
	for i, row := range rows {
		batch[i] = im.Normalizer.Normalize(row)
	}

	stored, err := im.Sink.Import(ctx, batch)
	for _, e := range stored {
		rep.Imported = append(rep.Imported, e)
		rep.Log = append(rep.Log, LogEntry{Level: LevelSuccess, Message: "imported: " + e.Title})
	}
	if err != nil {
		rep.Log = append(rep.Log, LogEntry{Level: LevelError, Message: err.Error()})
		return rep, err
	}
	return rep, nil
}
