package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kenf1/bytes-radar/internal/langreg"
	"github.com/kenf1/bytes-radar/internal/model"
)

func sampleAnalysis() *model.ProjectAnalysis {
	analysis := model.New("demo", true)
	analysis.AddFile(model.FileMetrics{
		Path: "main.go", Language: langreg.Go, Total: 10, Code: 7, Comment: 2, Blank: 1,
		SizeBytes: 120, Classified: true,
	})
	analysis.AddFile(model.FileMetrics{
		Path: "README.md", Language: langreg.Markdown, Total: 5, Code: 4, Comment: 0, Blank: 1,
		SizeBytes: 60, Classified: true,
	})
	return analysis
}

func TestPrintTableContainsLanguageBreakdown(t *testing.T) {
	registry := langreg.NewRegistry()
	var buf bytes.Buffer
	if err := PrintTable(&buf, sampleAnalysis(), registry); err != nil {
		t.Fatalf("PrintTable failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Go") || !strings.Contains(out, "Markdown") {
		t.Fatalf("expected both languages in table output, got:\n%s", out)
	}
	if !strings.Contains(out, "PRIMARY LANGUAGE") {
		t.Fatalf("expected a primary language row, got:\n%s", out)
	}
}

func TestPrintJSONRoundTrips(t *testing.T) {
	registry := langreg.NewRegistry()
	var buf bytes.Buffer
	if err := PrintJSON(&buf, sampleAnalysis(), registry); err != nil {
		t.Fatalf("PrintJSON failed: %v", err)
	}

	var doc reportDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal report json: %v", err)
	}
	if doc.Summary.TotalFiles != 2 {
		t.Fatalf("expected 2 files in summary, got %d", doc.Summary.TotalFiles)
	}
	if len(doc.Files) != 2 {
		t.Fatalf("expected detailed file list of 2, got %d", len(doc.Files))
	}
}

func TestPrintCSVHasTotalRow(t *testing.T) {
	registry := langreg.NewRegistry()
	var buf bytes.Buffer
	if err := PrintCSV(&buf, sampleAnalysis(), registry); err != nil {
		t.Fatalf("PrintCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv output: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 2 language rows + total row, got %d", len(records))
	}
	if records[len(records)-1][0] != "TOTAL" {
		t.Fatalf("expected last row to be TOTAL, got %q", records[len(records)-1][0])
	}
}
