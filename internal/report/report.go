// Package report renders a ProjectAnalysis as a console table, JSON, or
// CSV (encoding/csv, stdlib — no third-party CSV writer covers this)
// since a CLOC-style tool without a machine-ingestible tabular export is
// incomplete.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/kenf1/bytes-radar/internal/langreg"
	"github.com/kenf1/bytes-radar/internal/model"
)

// reportDocument is the JSON output shape: the project-wide summary
// alongside the per-language breakdown, and the per-file detail when
// detailed reporting was requested.
type reportDocument struct {
	Summary    model.Summary             `json:"summary"`
	Languages  []model.LanguageStatistic `json:"languages"`
	Files      []model.FileMetrics       `json:"files,omitempty"`
}

func buildDocument(analysis *model.ProjectAnalysis, registry *langreg.Registry) reportDocument {
	return reportDocument{
		Summary:   analysis.Summarize(registry),
		Languages: analysis.LanguageStatistics(registry),
		Files:     analysis.Files,
	}
}

// PrintTable renders a console-friendly tabular view: project summary,
// per-language breakdown, and (when detailed reporting was requested)
// per-file rows.
func PrintTable(writer io.Writer, analysis *model.ProjectAnalysis, registry *langreg.Registry) error {
	doc := buildDocument(analysis, registry)
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "PROJECT\t%s\n\n", doc.Summary.ProjectName); err != nil {
		return err
	}

	if len(doc.Files) > 0 {
		if _, err := fmt.Fprintln(tw, "FILE\tLANGUAGE\tTOTAL\tCODE\tCOMMENT\tBLANK"); err != nil {
			return err
		}
		for _, f := range doc.Files {
			displayName := string(f.Language)
			if rules, ok := registry.RulesFor(f.Language); ok {
				displayName = rules.DisplayName
			}
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n",
				f.Path, displayName, f.Total, f.Code, f.Comment, f.Blank); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(tw); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(tw, "LANGUAGE\tFILES\tTOTAL\tCODE\tCOMMENT\tBLANK\tCODE%\tDOC%"); err != nil {
		return err
	}
	for _, lang := range doc.Languages {
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%.1f\t%.1f\n",
			lang.LanguageName, lang.FileCount, lang.TotalLines, lang.CodeLines,
			lang.CommentLines, lang.BlankLines, lang.ComplexityRatio*100, lang.DocumentationRatio*100); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(tw, "\nTOTAL\t%d\t%d\t%d\t%d\t%d\t%.1f\t%.1f\n",
		doc.Summary.TotalFiles, doc.Summary.TotalLines, doc.Summary.TotalCodeLines,
		doc.Summary.TotalCommentLines, doc.Summary.TotalBlankLines,
		doc.Summary.OverallComplexityRatio*100, doc.Summary.OverallDocumentationRatio*100); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "\nPRIMARY LANGUAGE\t%s\n", doc.Summary.PrimaryLanguage); err != nil {
		return err
	}

	return tw.Flush()
}

// PrintJSON writes the report document as indented JSON to writer.
func PrintJSON(writer io.Writer, analysis *model.ProjectAnalysis, registry *langreg.Registry) error {
	doc := buildDocument(analysis, registry)
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile exports the report document to path, creating parent
// directories as needed.
func WriteJSONFile(path string, analysis *model.ProjectAnalysis, registry *langreg.Registry) error {
	doc := buildDocument(analysis, registry)
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return writeFile(path, content)
}

// PrintCSV writes the per-language breakdown as CSV, one row per language
// plus a trailing TOTAL row. Per-file CSV export is intentionally not
// offered: the detailed-report flag is meant for JSON consumption, and a
// flat per-file CSV with no language summary would duplicate most of a
// spreadsheet tool's own pivoting.
func PrintCSV(writer io.Writer, analysis *model.ProjectAnalysis, registry *langreg.Registry) error {
	doc := buildDocument(analysis, registry)
	w := csv.NewWriter(writer)

	header := []string{"language", "files", "total_lines", "code_lines", "comment_lines", "blank_lines", "size_bytes", "complexity_ratio", "documentation_ratio"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, lang := range doc.Languages {
		row := []string{
			lang.LanguageName,
			strconv.FormatUint(lang.FileCount, 10),
			strconv.FormatUint(lang.TotalLines, 10),
			strconv.FormatUint(lang.CodeLines, 10),
			strconv.FormatUint(lang.CommentLines, 10),
			strconv.FormatUint(lang.BlankLines, 10),
			strconv.FormatUint(lang.TotalSizeBytes, 10),
			strconv.FormatFloat(lang.ComplexityRatio, 'f', 4, 64),
			strconv.FormatFloat(lang.DocumentationRatio, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	total := []string{
		"TOTAL",
		strconv.FormatUint(doc.Summary.TotalFiles, 10),
		strconv.FormatUint(doc.Summary.TotalLines, 10),
		strconv.FormatUint(doc.Summary.TotalCodeLines, 10),
		strconv.FormatUint(doc.Summary.TotalCommentLines, 10),
		strconv.FormatUint(doc.Summary.TotalBlankLines, 10),
		strconv.FormatUint(doc.Summary.TotalSizeBytes, 10),
		strconv.FormatFloat(doc.Summary.OverallComplexityRatio, 'f', 4, 64),
		strconv.FormatFloat(doc.Summary.OverallDocumentationRatio, 'f', 4, 64),
	}
	if err := w.Write(total); err != nil {
		return fmt.Errorf("write csv total row: %w", err)
	}

	w.Flush()
	return w.Error()
}

// WriteCSVFile exports the per-language CSV breakdown to path.
func WriteCSVFile(path string, analysis *model.ProjectAnalysis, registry *langreg.Registry) error {
	var buf bytes.Buffer
	if err := PrintCSV(&buf, analysis, registry); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, content []byte) error {
	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
