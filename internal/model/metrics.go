// Package model defines bytes-radar's core data model: per-file line
// metrics, per-language aggregates, and the project-wide analysis result
// that the orchestrator hands to report serializers.
package model

import (
	"sort"

	"github.com/kenf1/bytes-radar/internal/langreg"
)

// FileMetrics is the result of classifying a single archive entry.
//
// Invariant: Total == Code + Comment + Blank, except when Classified is
// false, in which case all four counters are zero (the file exceeded
// MaxLineLength and was not run through the line classifier).
type FileMetrics struct {
	Path       string             `json:"path"`
	SizeBytes  uint64             `json:"size_bytes"`
	Language   langreg.LanguageID `json:"language"`
	Total      uint64             `json:"total_lines"`
	Code       uint64             `json:"code_lines"`
	Comment    uint64             `json:"comment_lines"`
	Blank      uint64             `json:"blank_lines"`
	Classified bool               `json:"classified"`
	Generated  bool               `json:"generated"`
}

// LanguageAggregate sums FileMetrics across every file assigned to one
// language within a project.
type LanguageAggregate struct {
	Language  langreg.LanguageID `json:"language"`
	Files     uint64             `json:"files"`
	Total     uint64             `json:"total_lines"`
	Code      uint64             `json:"code_lines"`
	Comment   uint64             `json:"comment_lines"`
	Blank     uint64             `json:"blank_lines"`
	SizeBytes uint64             `json:"size_bytes"`
}

// Add folds a file's metrics into the aggregate. Adding a file of a
// different language than the aggregate's own is a caller bug; callers
// route through ProjectAnalysis.AddFile, which picks the right aggregate.
func (a *LanguageAggregate) Add(fm FileMetrics) {
	a.Files++
	a.Total += fm.Total
	a.Code += fm.Code
	a.Comment += fm.Comment
	a.Blank += fm.Blank
	a.SizeBytes += fm.SizeBytes
}

// merge folds another aggregate of the same language into this one.
func (a *LanguageAggregate) merge(other *LanguageAggregate) {
	a.Files += other.Files
	a.Total += other.Total
	a.Code += other.Code
	a.Comment += other.Comment
	a.Blank += other.Blank
	a.SizeBytes += other.SizeBytes
}

// Share is this language's fraction of the project's total lines.
func (a *LanguageAggregate) Share(projectTotal uint64) float64 {
	if projectTotal == 0 {
		return 0
	}
	return float64(a.Total) / float64(projectTotal)
}

// CodeRatio is code_lines / total_lines, 0 when total_lines is 0.
func (a *LanguageAggregate) CodeRatio() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Code) / float64(a.Total)
}

// DocRatio is comment_lines / total_lines, 0 when total_lines is 0.
func (a *LanguageAggregate) DocRatio() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Comment) / float64(a.Total)
}

// AverageFileSize is total_lines / files, 0 when there are no files.
func (a *LanguageAggregate) AverageFileSize() float64 {
	if a.Files == 0 {
		return 0
	}
	return float64(a.Total) / float64(a.Files)
}

// ProjectAnalysis is the complete result of analyzing one remote reference.
type ProjectAnalysis struct {
	ProjectName string
	Languages   map[langreg.LanguageID]*LanguageAggregate
	Files       []FileMetrics // nil unless detailed reporting was requested
	detailed    bool
}

// New creates an empty analysis for the given project name.
func New(projectName string, detailed bool) *ProjectAnalysis {
	return &ProjectAnalysis{
		ProjectName: projectName,
		Languages:   make(map[langreg.LanguageID]*LanguageAggregate),
		detailed:    detailed,
	}
}

// AddFile incorporates one file's metrics into the project's per-language
// aggregate and, when detailed reporting was requested, the file list.
//
// Adding the same path twice is a caller bug: the archive reader guarantees
// path uniqueness within one tar stream, so this method trusts it and does
// not deduplicate.
func (p *ProjectAnalysis) AddFile(fm FileMetrics) {
	agg, ok := p.Languages[fm.Language]
	if !ok {
		agg = &LanguageAggregate{Language: fm.Language}
		p.Languages[fm.Language] = agg
	}
	agg.Add(fm)

	if p.detailed {
		p.Files = append(p.Files, fm)
	}
}

// Merge combines another partial analysis into this one. Merge is
// associative and commutative: disjoint partial analyses merged in any
// order give the same per-language aggregates.
func (p *ProjectAnalysis) Merge(other *ProjectAnalysis) {
	for lang, agg := range other.Languages {
		existing, ok := p.Languages[lang]
		if !ok {
			copied := *agg
			p.Languages[lang] = &copied
			continue
		}
		existing.merge(agg)
	}
	if p.detailed {
		p.Files = append(p.Files, other.Files...)
	}
}

// Summary is the aggregate, derived, project-wide view of a ProjectAnalysis.
type Summary struct {
	ProjectName               string  `json:"project_name"`
	TotalFiles                uint64  `json:"total_files"`
	TotalLines                uint64  `json:"total_lines"`
	TotalCodeLines            uint64  `json:"total_code_lines"`
	TotalCommentLines         uint64  `json:"total_comment_lines"`
	TotalBlankLines           uint64  `json:"total_blank_lines"`
	TotalSizeBytes            uint64  `json:"total_size_bytes"`
	LanguageCount             int     `json:"language_count"`
	PrimaryLanguage           string  `json:"primary_language"`
	OverallComplexityRatio    float64 `json:"overall_complexity_ratio"`
	OverallDocumentationRatio float64 `json:"overall_documentation_ratio"`
}

// LanguageStatistic is one row of the per-language breakdown in a report.
type LanguageStatistic struct {
	LanguageName       string  `json:"language_name"`
	FileCount          uint64  `json:"file_count"`
	TotalLines         uint64  `json:"total_lines"`
	CodeLines          uint64  `json:"code_lines"`
	CommentLines       uint64  `json:"comment_lines"`
	BlankLines         uint64  `json:"blank_lines"`
	TotalSizeBytes     uint64  `json:"total_size_bytes"`
	AverageFileSize    float64 `json:"average_file_size"`
	ComplexityRatio    float64 `json:"complexity_ratio"`
	DocumentationRatio float64 `json:"documentation_ratio"`
}

// LanguageStatistics returns one LanguageStatistic per language present in
// the analysis, sorted by total lines descending (ties broken by name).
func (p *ProjectAnalysis) LanguageStatistics(registry *langreg.Registry) []LanguageStatistic {
	stats := make([]LanguageStatistic, 0, len(p.Languages))
	for _, agg := range p.Languages {
		displayName := string(agg.Language)
		if rules, ok := registry.RulesFor(agg.Language); ok {
			displayName = rules.DisplayName
		}
		stats = append(stats, LanguageStatistic{
			LanguageName:       displayName,
			FileCount:          agg.Files,
			TotalLines:         agg.Total,
			CodeLines:          agg.Code,
			CommentLines:       agg.Comment,
			BlankLines:         agg.Blank,
			TotalSizeBytes:     agg.SizeBytes,
			AverageFileSize:    agg.AverageFileSize(),
			ComplexityRatio:    agg.CodeRatio(),
			DocumentationRatio: agg.DocRatio(),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalLines != stats[j].TotalLines {
			return stats[i].TotalLines > stats[j].TotalLines
		}
		return stats[i].LanguageName < stats[j].LanguageName
	})

	return stats
}

// Summarize computes the project-wide Summary. PrimaryLanguage ties are
// broken by lexicographic display-name order, per the project's resolved
// Open Question on determinism.
func (p *ProjectAnalysis) Summarize(registry *langreg.Registry) Summary {
	stats := p.LanguageStatistics(registry)

	var summary Summary
	summary.ProjectName = p.ProjectName
	summary.LanguageCount = len(p.Languages)

	var best *LanguageStatistic
	for i := range stats {
		s := &stats[i]
		summary.TotalFiles += s.FileCount
		summary.TotalLines += s.TotalLines
		summary.TotalCodeLines += s.CodeLines
		summary.TotalCommentLines += s.CommentLines
		summary.TotalBlankLines += s.BlankLines
		summary.TotalSizeBytes += s.TotalSizeBytes

		if best == nil || s.TotalLines > best.TotalLines ||
			(s.TotalLines == best.TotalLines && s.LanguageName < best.LanguageName) {
			best = s
		}
	}

	if best != nil {
		summary.PrimaryLanguage = best.LanguageName
	}

	if summary.TotalLines > 0 {
		summary.OverallComplexityRatio = float64(summary.TotalCodeLines) / float64(summary.TotalLines)
		summary.OverallDocumentationRatio = float64(summary.TotalCommentLines) / float64(summary.TotalLines)
	}

	return summary
}
