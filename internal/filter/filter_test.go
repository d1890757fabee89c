package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kenf1/bytes-radar/internal/langreg"
)

func newFilter(t *testing.T, opts Options) *Filter {
	t.Helper()
	return New(opts, langreg.NewRegistry())
}

func TestAcceptPathRejectsHidden(t *testing.T) {
	f := newFilter(t, Options{})
	assert.False(t, f.AcceptPath(".git/config"))
}

func TestAcceptPathAllowsHiddenWhenIncluded(t *testing.T) {
	f := newFilter(t, Options{IncludeHidden: true})
	assert.True(t, f.AcceptPath(".config/app.go"))
}

func TestAcceptPathRejectsBuildDir(t *testing.T) {
	f := newFilter(t, Options{})
	assert.False(t, f.AcceptPath("target/release/lib.rs"))
}

func TestAcceptPathRejectsTestsByDefault(t *testing.T) {
	f := newFilter(t, Options{})
	assert.False(t, f.AcceptPath("src/tests/helper.go"))
	assert.False(t, f.AcceptPath("src/main_test.go"))
}

func TestAcceptPathIncludesTestsWhenRequested(t *testing.T) {
	f := newFilter(t, Options{IncludeTests: true})
	assert.True(t, f.AcceptPath("src/main_test.go"))
}

func TestAcceptPathRejectsGeneratedByDefault(t *testing.T) {
	f := newFilter(t, Options{})
	assert.False(t, f.AcceptPath("web/app.min.js"))
	assert.False(t, f.AcceptPath("vendor/lib/thing.go"))
}

func TestAcceptPathIncludePattern(t *testing.T) {
	f := newFilter(t, Options{IncludePattern: "**/*.go"})
	assert.True(t, f.AcceptPath("src/main.go"))
	assert.False(t, f.AcceptPath("src/main.py"))
}

func TestAcceptPathExcludePattern(t *testing.T) {
	f := newFilter(t, Options{ExcludePattern: "**/*.py"})
	assert.False(t, f.AcceptPath("src/main.py"))
}

func TestAcceptPathDenyLanguage(t *testing.T) {
	f := newFilter(t, Options{DenyLanguage: map[langreg.LanguageID]bool{langreg.Python: true}})
	assert.False(t, f.AcceptPath("src/main.py"))
	assert.True(t, f.AcceptPath("src/main.go"))
}

func TestAcceptPathAllowLanguage(t *testing.T) {
	f := newFilter(t, Options{AllowLanguage: map[langreg.LanguageID]bool{langreg.Go: true}})
	assert.False(t, f.AcceptPath("src/main.py"))
	assert.True(t, f.AcceptPath("src/main.go"))
}

func TestAcceptSizeBounds(t *testing.T) {
	f := newFilter(t, Options{MinFileSize: 10, MaxFileSize: 100})
	assert.False(t, f.AcceptSize(5))
	assert.False(t, f.AcceptSize(200))
	assert.True(t, f.AcceptSize(50))
}

func TestAcceptSizeUnboundedWhenMaxIsZero(t *testing.T) {
	f := newFilter(t, Options{})
	assert.True(t, f.AcceptSize(10<<20))
}

func TestAcceptSizeAggressiveCap(t *testing.T) {
	f := newFilter(t, Options{AggressiveFilter: true})
	assert.True(t, f.AcceptSize(500<<10))
	assert.False(t, f.AcceptSize(2<<20))
}

func TestAcceptPathAggressiveBinaryExtension(t *testing.T) {
	f := newFilter(t, Options{AggressiveFilter: true})
	assert.False(t, f.AcceptPath("lib/thing.dll"))
}

func TestAcceptPathGitignoreLikePatterns(t *testing.T) {
	f := newFilter(t, Options{})
	f.SetGitignorePatterns([]string{"*.log"})
	assert.False(t, f.AcceptPath("output.log"))
}

func TestRootGitignorePath(t *testing.T) {
	assert.True(t, RootGitignorePath(".gitignore"))
	assert.True(t, RootGitignorePath("repo-main/.gitignore"))
	assert.False(t, RootGitignorePath("repo-main/sub/.gitignore"))
	assert.False(t, RootGitignorePath("repo-main/gitignore"))
}

func TestParseGitignorePatterns(t *testing.T) {
	data := []byte("# comment\n\n*.log\n/build\nnode_modules/\n!keep.log\n")
	patterns := ParseGitignorePatterns(data)
	assert.Equal(t, []string{"**/*.log", "**/build", "**/node_modules/**"}, patterns)
}

func TestAcceptPathAppliesLoadedRootGitignore(t *testing.T) {
	f := newFilter(t, Options{})
	f.SetGitignorePatterns(ParseGitignorePatterns([]byte("*.log\nnode_modules/\n")))
	assert.False(t, f.AcceptPath("output.log"))
	assert.False(t, f.AcceptPath("node_modules/lib/index.js"))
	assert.True(t, f.AcceptPath("src/main.go"))
}
