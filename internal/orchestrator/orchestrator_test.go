package orchestrator

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenf1/bytes-radar/internal/filter"
	"github.com/kenf1/bytes-radar/internal/langreg"
	"github.com/kenf1/bytes-radar/internal/progress"
	"github.com/kenf1/bytes-radar/internal/radarerr"
	"github.com/kenf1/bytes-radar/internal/resolver"
)

// buildTarGz mirrors internal/archive's test helper: a minimal in-memory
// archive so analyzeBody can be exercised without any network dependency.
// Entries are written in sorted path order so tar order is deterministic.
func buildTarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		content := files[name]
		hdr := &tar.Header{Name: name, Typeflag: tar.TypeReg, Size: int64(len(content)), Mode: 0644}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func testFiles() map[string]string {
	return map[string]string{
		"repo/main.go":     "package main\n\n// entry point\nfunc main() {\n\tprintln(\"hi\")\n}\n",
		"repo/util.go":     "package repo\n\nfunc helper() int {\n\treturn 1\n}\n",
		"repo/README.md":   "# repo\n\nSome docs.\n",
		"repo/vendor/a.go": "package vendor\n",
	}
}

func baseOptions() Options {
	return Options{
		Filter: filter.Options{
			IgnoreGitignoreLike: true,
		},
		MaxLineLength: 10000,
	}
}

func TestAnalyzeBodySequentialCountsFiles(t *testing.T) {
	registry := langreg.NewRegistry()
	data := buildTarGz(t, testFiles())

	analysis, err := analyzeBody(context.Background(), "demo", bytes.NewReader(data), nil, baseOptions(), registry, progress.NopSink{})
	require.NoError(t, err)

	summary := analysis.Summarize(registry)
	assert.EqualValues(t, 3, summary.TotalFiles, "vendor is excluded by default; a root README.md is outside any docs directory and is counted")
	assert.Equal(t, "Go", summary.PrimaryLanguage)
}

func TestAnalyzeSequentialAndParallelAgree(t *testing.T) {
	registry := langreg.NewRegistry()
	files := testFiles()

	seqData := buildTarGz(t, files)
	parData := buildTarGz(t, files)

	seqOpts := baseOptions()
	parOpts := baseOptions()
	parOpts.Parallel = true
	parOpts.WorkerCount = 3

	seqAnalysis, err := analyzeBody(context.Background(), "demo", bytes.NewReader(seqData), nil, seqOpts, registry, progress.NopSink{})
	require.NoError(t, err)
	parAnalysis, err := analyzeBody(context.Background(), "demo", bytes.NewReader(parData), nil, parOpts, registry, progress.NopSink{})
	require.NoError(t, err)

	seqSummary := seqAnalysis.Summarize(registry)
	parSummary := parAnalysis.Summarize(registry)

	assert.Equal(t, seqSummary.TotalFiles, parSummary.TotalFiles)
	assert.Equal(t, seqSummary.TotalLines, parSummary.TotalLines)
	assert.Equal(t, seqSummary.TotalCodeLines, parSummary.TotalCodeLines)
	assert.Equal(t, seqSummary.PrimaryLanguage, parSummary.PrimaryLanguage)
}

func TestAnalyzeBodyRejectsCorruptArchive(t *testing.T) {
	registry := langreg.NewRegistry()
	_, err := analyzeBody(context.Background(), "demo", bytes.NewReader([]byte("not gzip")), nil, baseOptions(), registry, progress.NopSink{})
	assert.Error(t, err)
}

func TestBuildHTTPClientInstallsRedirectCap(t *testing.T) {
	// fetchWithRetry itself requires a live HTTP server; the redirect cap
	// it builds on is pure and deterministic, so that's what's checked here.
	opts := baseOptions()
	opts.MaxRedirects = 2
	client := buildHTTPClient(opts)
	assert.NotNil(t, client.CheckRedirect)
}

func TestFetchWithRetrySurfacesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := &http.Client{Timeout: 20 * time.Millisecond}
	candidate := resolver.Candidate{URL: server.URL}

	_, _, err := fetchWithRetry(context.Background(), client, candidate, Options{RetryCount: 1})
	require.Error(t, err)
	assert.True(t, radarerr.Is(err, radarerr.Timeout))
}

func TestAnalyzeBodyAppliesRootGitignore(t *testing.T) {
	registry := langreg.NewRegistry()
	files := testFiles()
	files["repo/.gitignore"] = "ignored.go\n"
	files["repo/ignored.go"] = "package repo\n\nfunc ignored() int { return 1 }\n"
	data := buildTarGz(t, files)

	withoutGitignore := buildTarGz(t, testFiles())

	withIgnore, err := analyzeBody(context.Background(), "demo", bytes.NewReader(data), nil, baseOptions(), registry, progress.NopSink{})
	require.NoError(t, err)
	without, err := analyzeBody(context.Background(), "demo", bytes.NewReader(withoutGitignore), nil, baseOptions(), registry, progress.NopSink{})
	require.NoError(t, err)

	assert.Equal(t, without.Summarize(registry).TotalFiles, withIgnore.Summarize(registry).TotalFiles,
		"ignored.go must not be counted once the root .gitignore is honored")
}

func TestClassifyDataGatesGeneratedOnCountGenerated(t *testing.T) {
	registry := langreg.NewRegistry()
	longLine := bytes.Repeat([]byte("a"), 100)
	data := append(longLine, '\n')

	opts := baseOptions()
	opts.MaxLineLength = 10
	opts.Filter.CountGenerated = false

	_, process, err := classifyData("huge.go", data, opts, registry)
	require.NoError(t, err)
	assert.False(t, process, "a too-long line must be excluded by default")

	opts.Filter.CountGenerated = true
	fm, process, err := classifyData("huge.go", data, opts, registry)
	require.NoError(t, err)
	require.True(t, process)
	assert.True(t, fm.Generated)
	assert.False(t, fm.Classified)
}
