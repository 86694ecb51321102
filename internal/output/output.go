// Package output writes crawl results to durable storage: one CSV file per
// section with records in a fixed column order, and an optional JSON dump of
// the whole result.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonesrussell/thaicrawl/internal/domain"
	"github.com/jonesrussell/thaicrawl/internal/logger"
)

// utf8BOM is prefixed to CSV files so spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// dirPermissions is the mode for created output directories.
const dirPermissions = 0o755

// Writer persists crawl results to files.
type Writer struct {
	log logger.Interface
}

// NewWriter creates a result writer.
func NewWriter(log logger.Interface) *Writer {
	return &Writer{log: log.WithComponent("output")}
}

// WriteCSV writes one CSV file per non-empty section, deriving each path
// from the template (e.g. "data/x.csv" becomes "data/x_politic.csv").
// It returns the paths written.
func (w *Writer) WriteCSV(template string, result *domain.Result) ([]string, error) {
	var written []string

	for section, records := range result.PerSection {
		if len(records) == 0 {
			continue
		}

		path := SectionPath(template, section)
		if err := w.writeSectionCSV(path, records); err != nil {
			return written, fmt.Errorf("write section %s: %w", section, err)
		}

		w.log.Info("csv written", "path", path, "records", len(records))
		written = append(written, path)
	}

	return written, nil
}

// writeSectionCSV writes a single section's records to path.
func (w *Writer) writeSectionCSV(path string, records []domain.ArticleRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err = f.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM to %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err = cw.Write(domain.CSVHeader()); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}

	for i := range records {
		if err = cw.Write(records[i].CSVRow()); err != nil {
			return fmt.Errorf("write record to %s: %w", path, err)
		}
	}

	cw.Flush()
	if err = cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	return f.Close()
}

// WriteJSON writes the whole result as indented JSON.
func (w *Writer) WriteJSON(path string, result *domain.Result) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	w.log.Info("json written", "path", path)
	return nil
}

// SectionPath derives a per-section file path from a template path by
// appending the section name before the extension.
func SectionPath(template, section string) string {
	ext := filepath.Ext(template)
	base := strings.TrimSuffix(template, ext)
	return base + "_" + section + ext
}

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
