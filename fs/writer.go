// Package fs provides file-based record writers for CSV and JSON output.
package fs

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pjanik/cardscrape"
)

// EnsureExtension normalizes an output path so its extension matches
// the chosen format. Example: EnsureExtension("leads.txt", "csv") →
// "leads.csv".
func EnsureExtension(path, format string) string {
	want := "." + format
	if strings.EqualFold(filepath.Ext(path), want) {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + want
}

// Ensure writers implement cardscrape.RecordWriter at compile time.
var (
	_ cardscrape.RecordWriter = (*CSVWriter)(nil)
	_ cardscrape.RecordWriter = (*JSONWriter)(nil)
)

// CSVWriter writes records to a CSV file with a Name,Email header row.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter targeting the given path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// WriteRecords writes the records in order, creating parent
// directories as needed. Missing-field sentinels are written literally.
func (w *CSVWriter) WriteRecords(ctx context.Context, records []cardscrape.Record) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write([]string{"Name", "Email"}); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Name, r.Email}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	return writeFile(w.path, buf.Bytes())
}

// JSONWriter writes records to a JSON file as an array of
// {"name", "email"} objects with two-space indentation.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a JSONWriter targeting the given path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// WriteRecords writes the records in order, creating parent
// directories as needed. Non-ASCII text is preserved as UTF-8.
func (w *JSONWriter) WriteRecords(ctx context.Context, records []cardscrape.Record) error {
	if records == nil {
		records = []cardscrape.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return err
	}

	return writeFile(w.path, buf.Bytes())
}

// writeFile writes content to path, creating parent directories.
func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
