package langreg

import "testing"

// TestLookupByExtension verifies common extensions resolve to the
// expected language.
func TestLookupByExtension(t *testing.T) {
	reg := NewRegistry()

	cases := map[string]LanguageID{
		"main.go":       Go,
		"lib.rs":        Rust,
		"app.py":        Python,
		"index.ts":      TypeScript,
		"component.tsx": Tsx,
		"query.sql":     SQL,
		"README.md":     Markdown,
		"styles.css":    Css,
		"data.json":     Json,
	}

	for path, want := range cases {
		got, ok := reg.LookupByPath(path)
		if !ok {
			t.Fatalf("%s: expected match, got none", path)
		}
		if got != want {
			t.Fatalf("%s: expected %s, got %s", path, want, got)
		}
	}
}

// TestLookupByFilename verifies known extensionless filenames (Rakefile,
// etc.) resolve by name ahead of any extension match.
func TestLookupByFilename(t *testing.T) {
	reg := NewRegistry()

	id, ok := reg.LookupByPath("vendor/gems/Rakefile")
	if !ok || id != Ruby {
		t.Fatalf("expected Rakefile to resolve to Ruby, got %s (ok=%v)", id, ok)
	}
}

// TestLookupUnknownExtension verifies an unregistered extension returns
// false rather than a false match.
func TestLookupUnknownExtension(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.LookupByPath("binary.exe"); ok {
		t.Fatalf("expected no match for .exe")
	}
}

// TestRulesForKnownLanguage verifies the rules table stays in sync with
// the language constants.
func TestRulesForKnownLanguage(t *testing.T) {
	reg := NewRegistry()

	rules, ok := reg.RulesFor(Go)
	if !ok {
		t.Fatalf("expected rules for Go")
	}
	if rules.DisplayName != "Go" {
		t.Fatalf("unexpected display name: %s", rules.DisplayName)
	}
	if len(rules.BlockCommentDelimiters) != 1 {
		t.Fatalf("expected one block comment delimiter for Go")
	}
}

// TestIterLanguagesSortedByDisplayName verifies iteration order is
// deterministic, sorted by display name.
func TestIterLanguagesSortedByDisplayName(t *testing.T) {
	reg := NewRegistry()
	all := reg.IterLanguages()

	for i := 1; i < len(all); i++ {
		if all[i-1].DisplayName > all[i].DisplayName {
			t.Fatalf("IterLanguages not sorted: %s before %s", all[i-1].DisplayName, all[i].DisplayName)
		}
	}
}
