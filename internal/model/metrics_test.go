package model

import (
	"testing"

	"github.com/kenf1/bytes-radar/internal/langreg"
)

func fileFixture(lang langreg.LanguageID, total, code, comment, blank uint64) FileMetrics {
	return FileMetrics{
		Path:       "x",
		Language:   lang,
		Total:      total,
		Code:       code,
		Comment:    comment,
		Blank:      blank,
		Classified: true,
	}
}

// TestMergeAssociativity verifies (A.Merge(B)).Merge(C) == A.Merge(B.Merge(C))
// for three partial analyses, per the invariant that language aggregate
// addition is associative and commutative.
func TestMergeAssociativity(t *testing.T) {
	build := func() (*ProjectAnalysis, *ProjectAnalysis, *ProjectAnalysis) {
		a := New("p", false)
		a.AddFile(fileFixture(langreg.Go, 10, 8, 1, 1))
		b := New("p", false)
		b.AddFile(fileFixture(langreg.Go, 5, 4, 0, 1))
		b.AddFile(fileFixture(langreg.Python, 3, 2, 0, 1))
		c := New("p", false)
		c.AddFile(fileFixture(langreg.Python, 7, 5, 1, 1))
		return a, b, c
	}

	a1, b1, c1 := build()
	left := New("p", false)
	left.Merge(a1)
	left.Merge(b1)
	left.Merge(c1)

	a2, b2, c2 := build()
	bc := New("p", false)
	bc.Merge(b2)
	bc.Merge(c2)
	right := New("p", false)
	right.Merge(a2)
	right.Merge(bc)

	reg := langreg.NewRegistry()
	leftSummary := left.Summarize(reg)
	rightSummary := right.Summarize(reg)

	if leftSummary.TotalLines != rightSummary.TotalLines {
		t.Fatalf("total lines differ: %d vs %d", leftSummary.TotalLines, rightSummary.TotalLines)
	}
	if leftSummary.TotalCodeLines != rightSummary.TotalCodeLines {
		t.Fatalf("total code lines differ: %d vs %d", leftSummary.TotalCodeLines, rightSummary.TotalCodeLines)
	}
	if left.Languages[langreg.Go].Total != right.Languages[langreg.Go].Total {
		t.Fatalf("Go totals differ after merge")
	}
}

// TestTotalsConsistency verifies summary totals equal the sum over
// per-language aggregates, which equal the sum over files.
func TestTotalsConsistency(t *testing.T) {
	p := New("p", true)
	p.AddFile(fileFixture(langreg.Go, 10, 8, 1, 1))
	p.AddFile(fileFixture(langreg.Go, 4, 3, 0, 1))
	p.AddFile(fileFixture(langreg.Python, 6, 5, 0, 1))

	reg := langreg.NewRegistry()
	summary := p.Summarize(reg)

	var fileTotal uint64
	for _, fm := range p.Files {
		fileTotal += fm.Total
	}
	if summary.TotalLines != fileTotal {
		t.Fatalf("summary total %d != file sum %d", summary.TotalLines, fileTotal)
	}

	var aggTotal uint64
	for _, agg := range p.Languages {
		aggTotal += agg.Total
	}
	if summary.TotalLines != aggTotal {
		t.Fatalf("summary total %d != aggregate sum %d", summary.TotalLines, aggTotal)
	}
}

// TestPrimaryLanguageTieBreak verifies ties are broken lexicographically by
// display name, not insertion or iteration order.
func TestPrimaryLanguageTieBreak(t *testing.T) {
	p := New("p", false)
	p.AddFile(fileFixture(langreg.Rust, 10, 10, 0, 0))
	p.AddFile(fileFixture(langreg.Go, 10, 10, 0, 0))

	reg := langreg.NewRegistry()
	summary := p.Summarize(reg)

	if summary.PrimaryLanguage != "Go" {
		t.Fatalf("expected tie-break to pick Go, got %s", summary.PrimaryLanguage)
	}
}
