package output_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonesrussell/thaicrawl/internal/domain"
	"github.com/jonesrussell/thaicrawl/internal/logger"
	"github.com/jonesrussell/thaicrawl/internal/output"
)

func testRecord(section, id string) domain.ArticleRecord {
	return domain.ArticleRecord{
		Agency:       domain.Agency,
		Section:      section,
		ID:           id,
		PublishedISO: "2024-01-01T00:00:00+00:00",
		Headline:     "Headline " + id,
		Summary:      "Summary " + id,
		Content:      "Content " + id,
		URL:          "https://x/news/" + section + "/" + id,
	}
}

func TestSectionPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		section  string
		want     string
	}{
		{
			name:     "csv extension",
			template: "data/thairath_dataset.csv",
			section:  "politic",
			want:     "data/thairath_dataset_politic.csv",
		},
		{
			name:     "no extension",
			template: "out/dataset",
			section:  "economics",
			want:     "out/dataset_economics",
		},
		{
			name:     "bare filename",
			template: "dataset.csv",
			section:  "investment",
			want:     "dataset_investment.csv",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := output.SectionPath(tt.template, tt.section); got != tt.want {
				t.Errorf("SectionPath(%q, %q) = %q, want %q", tt.template, tt.section, got, tt.want)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	template := filepath.Join(dir, "dataset.csv")

	result := domain.NewResult("run-1", []string{"politic", "economics"})
	result.PerSection["politic"] = []domain.ArticleRecord{
		testRecord("politic", "1"),
		testRecord("politic", "2"),
	}
	// economics stays empty: no file must be written for it.

	w := output.NewWriter(logger.NewNoOp())
	written, err := w.WriteCSV(template, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(written) != 1 {
		t.Fatalf("expected 1 file written, got %v", written)
	}
	wantPath := filepath.Join(dir, "dataset_politic.csv")
	if written[0] != wantPath {
		t.Errorf("expected path %q, got %q", wantPath, written[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "dataset_economics.csv")); !os.IsNotExist(err) {
		t.Error("empty section should not produce a file")
	}

	raw, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}

	bom := []byte{0xEF, 0xBB, 0xBF}
	if !bytes.HasPrefix(raw, bom) {
		t.Error("file should start with a UTF-8 BOM")
	}

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, bom))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 records, got %d rows", len(rows))
	}

	wantHeader := []string{"agency", "section", "id", "published_iso", "headline", "summary", "content", "url"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header column %d = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][2] != "1" || rows[2][2] != "2" {
		t.Errorf("record ids out of order: %q, %q", rows[1][2], rows[2][2])
	}
}

func TestWriteCSVSanitizesNewlines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	template := filepath.Join(dir, "dataset.csv")

	record := testRecord("politic", "1")
	record.Content = "first line\nsecond line\r\nthird"

	result := domain.NewResult("run-1", []string{"politic"})
	result.PerSection["politic"] = []domain.ArticleRecord{record}

	w := output.NewWriter(logger.NewNoOp())
	if _, err := w.WriteCSV(template, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "dataset_politic.csv"))
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	content := rows[1][6]
	if content != "first line second line third" {
		t.Errorf("expected newlines collapsed to spaces, got %q", content)
	}
}

func TestWriteCSVCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	template := filepath.Join(dir, "nested", "deeper", "dataset.csv")

	result := domain.NewResult("run-1", []string{"politic"})
	result.PerSection["politic"] = []domain.ArticleRecord{testRecord("politic", "1")}

	w := output.NewWriter(logger.NewNoOp())
	written, err := w.WriteCSV(template, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 1 {
		t.Fatalf("expected 1 file written, got %v", written)
	}
	if _, err := os.Stat(written[0]); err != nil {
		t.Errorf("written file missing: %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")

	result := domain.NewResult("run-json", []string{"politic"})
	result.PerSection["politic"] = []domain.ArticleRecord{testRecord("politic", "7")}
	result.OK = 1

	w := output.NewWriter(logger.NewNoOp())
	if err := w.WriteJSON(path, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}

	var decoded domain.Result
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if decoded.RunID != "run-json" {
		t.Errorf("expected run id preserved, got %q", decoded.RunID)
	}
	if len(decoded.PerSection["politic"]) != 1 {
		t.Errorf("expected 1 politic record, got %d", len(decoded.PerSection["politic"]))
	}
	if decoded.PerSection["politic"][0].ID != "7" {
		t.Errorf("expected record id 7, got %q", decoded.PerSection["politic"][0].ID)
	}
}
