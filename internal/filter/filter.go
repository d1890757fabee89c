// Package filter implements bytes-radar's two-stage path+size filter:
// path-based rejection before an entry's bytes are read from the tar
// stream, and size-based rejection once the header is known. Glob matching
// uses doublestar the way a directory-skip scanner would.
package filter

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kenf1/bytes-radar/internal/langreg"
)

// Options mirrors the filter-relevant subset of AnalyzeOptions.
type Options struct {
	IgnoreHidden        bool
	IgnoreGitignoreLike bool
	MaxFileSize         uint64 // 0 or negative-equivalent means unbounded
	MinFileSize         uint64
	IncludeTests        bool
	IncludeDocs         bool
	IncludeHidden       bool
	CountGenerated      bool
	IncludePattern      string
	ExcludePattern      string
	AllowLanguage       map[langreg.LanguageID]bool
	DenyLanguage        map[langreg.LanguageID]bool
	AggressiveFilter    bool
	CustomIgnore        []string
}

// aggressiveMaxSize is the hard cap aggressive mode assigns to file size.
const aggressiveMaxSize = 1 << 20 // 1 MiB

var buildDirs = map[string]bool{
	"target": true, "build": true, "dist": true, "out": true, ".cargo": true,
}

var buildDirGlobPrefixes = []string{"cmake-build-"}

var packageDirs = map[string]bool{
	"node_modules": true, "vendor": true, ".nuget": true, "packages": true,
	".pub_cache": true, ".pub-cache": true, "bower_components": true,
}

var testDirs = map[string]bool{
	"test": true, "tests": true, "__tests__": true, "spec": true, "specs": true,
	"__pycache__": true,
}

var testFileSuffixes = []string{"_test", ".test", ".spec"}

var docsDirs = map[string]bool{
	"doc": true, "docs": true, "documentation": true, ".github": true, "examples": true,
}

var docsExtensions = map[string]bool{
	"md": true, "rst": true, "adoc": true, "txt": true,
}

var gitignoreLikeNames = map[string]bool{
	"node_modules": true, "target": true, ".git": true, "dist": true,
	"build": true, ".venv": true, "__pycache__": true, ".idea": true, ".vscode": true,
}

var generatedDirs = map[string]bool{
	"vendor": true, "third_party": true, "node_modules": true, "dist": true, "build": true,
}

var generatedGlobs = []string{"*.min.js", "*.bundle.js", "*-lock.*", "*.generated.*"}

// aggressiveBinaryExtensions is the 53-extension deny list from the
// original implementation's is_binary_file, reused verbatim for
// aggressive-mode path filtering.
var aggressiveBinaryExtensions = map[string]bool{
	"exe": true, "dll": true, "so": true, "dylib": true, "a": true, "lib": true,
	"o": true, "obj": true, "bin": true, "dat": true, "db": true, "sqlite": true,
	"zip": true, "tar": true, "gz": true, "bz2": true, "xz": true, "7z": true, "rar": true,
	"jar": true, "war": true, "ear": true, "class": true, "pyc": true, "pyo": true,
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true, "ico": true,
	"svg": true, "webp": true, "tiff": true, "mp3": true, "mp4": true, "avi": true,
	"mov": true, "wav": true, "flac": true, "pdf": true, "doc": true, "docx": true,
	"xls": true, "xlsx": true, "ppt": true, "pptx": true, "ttf": true, "woff": true,
	"woff2": true, "eot": true,
}

// Filter evaluates one entry's path and (once known) size against Options.
type Filter struct {
	opts      Options
	registry  *langreg.Registry
	gitignore []string // compiled doublestar patterns, lazily populated
}

// New builds a Filter bound to the given options and language registry
// (needed for allow/deny-language checks, which require resolving a path
// to a language before rejecting it).
func New(opts Options, registry *langreg.Registry) *Filter {
	return &Filter{opts: opts, registry: registry}
}

// SetGitignorePatterns installs patterns read from the archive's
// root-level .gitignore, the first time one is seen in the tar stream.
func (f *Filter) SetGitignorePatterns(patterns []string) {
	f.gitignore = patterns
}

// RootGitignorePath reports whether entryPath is the archive's root-level
// .gitignore — the only one honored, since a tar stream is read forward
// once and later directories are never revisited.
func RootGitignorePath(entryPath string) bool {
	segments := strings.Split(path.Clean(entryPath), "/")
	return segments[len(segments)-1] == ".gitignore" && len(segments) <= 2
}

// ParseGitignorePatterns converts raw .gitignore content into doublestar
// glob patterns, the same base-relative approach syl-wordcount's scan
// package applies. Negated patterns are skipped: a single-pass
// match-or-reject filter has no way to un-reject an entry it already
// passed over.
func ParseGitignorePatterns(data []byte) []string {
	var patterns []string
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		line = strings.TrimPrefix(line, "/")
		isDir := strings.HasSuffix(line, "/")
		line = strings.TrimSuffix(line, "/")
		if !strings.Contains(line, "/") {
			line = "**/" + line
		}
		if isDir {
			line += "/**"
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// AcceptPath decides whether an entry should be read at all, before its
// bytes are fetched from the tar stream. Callers that reject must still
// drain the entry's reader to keep the stream aligned.
func (f *Filter) AcceptPath(entryPath string) bool {
	segments := strings.Split(path.Clean(entryPath), "/")
	base := segments[len(segments)-1]
	ext := strings.ToLower(extensionOf(base))

	if !f.opts.IncludeHidden && hasHiddenSegment(segments) {
		return false
	}

	if f.opts.IgnoreGitignoreLike && matchesAny(segments, gitignoreLikeNames) {
		return false
	}

	if !f.opts.IncludeTests && isTestPath(segments, base) {
		return false
	}

	if !f.opts.IncludeDocs && isDocsPath(segments, ext) {
		return false
	}

	if !f.opts.CountGenerated && isGeneratedPath(segments, base) {
		return false
	}

	if matchesAny(segments, buildDirs) || hasGlobPrefixSegment(segments, buildDirGlobPrefixes) {
		return false
	}
	if matchesAny(segments, packageDirs) {
		return false
	}

	if f.opts.IncludePattern != "" {
		if ok, _ := doublestar.Match(f.opts.IncludePattern, entryPath); !ok {
			return false
		}
	}
	if f.opts.ExcludePattern != "" {
		if ok, _ := doublestar.Match(f.opts.ExcludePattern, entryPath); ok {
			return false
		}
	}
	for _, pattern := range f.opts.CustomIgnore {
		if ok, _ := doublestar.Match(pattern, entryPath); ok {
			return false
		}
	}
	for _, pattern := range f.gitignore {
		if ok, _ := doublestar.Match(pattern, entryPath); ok {
			return false
		}
	}

	if f.opts.AggressiveFilter {
		if ext != "" && aggressiveBinaryExtensions[ext] {
			return false
		}
		if strings.Contains(base, ".min.") {
			return false
		}
	}

	if id, ok := f.registry.LookupByPath(entryPath); ok {
		if len(f.opts.DenyLanguage) > 0 && f.opts.DenyLanguage[id] {
			return false
		}
		if len(f.opts.AllowLanguage) > 0 && !f.opts.AllowLanguage[id] {
			return false
		}
	}

	return true
}

// AcceptSize decides whether an entry of the given size, once its tar
// header is known, should be read.
func (f *Filter) AcceptSize(size uint64) bool {
	if size < f.opts.MinFileSize {
		return false
	}

	maxSize := f.opts.MaxFileSize
	if f.opts.AggressiveFilter && (maxSize == 0 || maxSize > aggressiveMaxSize) {
		maxSize = aggressiveMaxSize
	}
	if maxSize > 0 && size > maxSize {
		return false
	}

	return true
}

func extensionOf(base string) string {
	dot := strings.LastIndex(base, ".")
	if dot == -1 || dot == len(base)-1 {
		return ""
	}
	return base[dot+1:]
}

func hasHiddenSegment(segments []string) bool {
	for _, s := range segments {
		if len(s) > 0 && s[0] == '.' && s != "." && s != ".." {
			return true
		}
	}
	return false
}

func matchesAny(segments []string, set map[string]bool) bool {
	for _, s := range segments {
		if set[strings.ToLower(s)] {
			return true
		}
	}
	return false
}

func hasGlobPrefixSegment(segments []string, prefixes []string) bool {
	for _, s := range segments {
		lower := strings.ToLower(s)
		for _, p := range prefixes {
			if strings.HasPrefix(lower, p) {
				return true
			}
		}
	}
	return false
}

func isTestPath(segments []string, base string) bool {
	if matchesAny(segments, testDirs) {
		return true
	}
	lowerBase := strings.ToLower(base)
	for _, suffix := range testFileSuffixes {
		if strings.Contains(lowerBase, suffix) {
			return true
		}
	}
	return false
}

func isDocsPath(segments []string, ext string) bool {
	inDocsDir := matchesAny(segments, docsDirs)
	if !inDocsDir {
		return false
	}
	if len(segments) == 1 {
		// a docs-named top-level file with no containing directory
		return docsExtensions[ext]
	}
	return true
}

func isGeneratedPath(segments []string, base string) bool {
	if matchesAny(segments, generatedDirs) {
		return true
	}
	for _, g := range generatedGlobs {
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}
