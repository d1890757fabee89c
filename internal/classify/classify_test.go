package classify

import (
	"strings"
	"testing"

	"github.com/kenf1/bytes-radar/internal/langreg"
)

func classifyText(t *testing.T, rules *langreg.LanguageRules, content string) Result {
	t.Helper()
	engine := NewEngine(rules)
	result, err := engine.ClassifyReader(strings.NewReader(content), 0)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	return result
}

func cRules(t *testing.T) *langreg.LanguageRules {
	t.Helper()
	reg := langreg.NewRegistry()
	rules, ok := reg.RulesFor(langreg.C)
	if !ok {
		t.Fatalf("missing C rules")
	}
	return rules
}

// TestCodeWithTrailingLineComment covers S1: code and a trailing line
// comment on the same line count as code, never comment.
func TestCodeWithTrailingLineComment(t *testing.T) {
	r := classifyText(t, cRules(t), "int x = 1; // set x\n")
	if r.Total != 1 || r.Code != 1 || r.Comment != 0 || r.Blank != 0 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

// TestBlockCommentAlone covers S2.
func TestBlockCommentAlone(t *testing.T) {
	r := classifyText(t, cRules(t), "/* hello */\n")
	if r.Total != 1 || r.Code != 0 || r.Comment != 1 || r.Blank != 0 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

// TestNestedBlockCommentDisallowed covers S3 for a language with nesting disabled
// (C): the first close ends the comment and the trailing " c */" is code.
func TestNestedBlockCommentDisallowed(t *testing.T) {
	r := classifyText(t, cRules(t), "/* a /* b */ c */\n")
	if r.Total != 1 || r.Comment != 0 || r.Code != 1 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

// TestNestedBlockCommentAllowed covers S3 for a nesting-enabled language
// (Rust): the whole line stays inside the comment.
func TestNestedBlockCommentAllowed(t *testing.T) {
	reg := langreg.NewRegistry()
	rust, _ := reg.RulesFor(langreg.Rust)
	r := classifyText(t, rust, "/* a /* b */ c */\n")
	if r.Total != 1 || r.Comment != 1 || r.Code != 0 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

// TestStringContainsCommentDelimiter covers S4: a comment-looking token
// inside a string literal is not a comment.
func TestStringContainsCommentDelimiter(t *testing.T) {
	r := classifyText(t, cRules(t), "s = \"//not a comment\";\n")
	if r.Total != 1 || r.Code != 1 || r.Comment != 0 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

// TestBlankVsWhitespace covers S5.
func TestBlankVsWhitespace(t *testing.T) {
	r := classifyText(t, cRules(t), "   \n\t\n")
	if r.Total != 2 || r.Blank != 2 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

// TestNoTrailingNewline covers S6: a final partial line without a
// terminator still counts.
func TestNoTrailingNewline(t *testing.T) {
	r := classifyText(t, cRules(t), "abc")
	if r.Total != 1 || r.Code != 1 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

// TestCRLF covers S7: a trailing \r before \n is stripped and never
// contributes to classification.
func TestCRLF(t *testing.T) {
	r := classifyText(t, cRules(t), "a\r\nb\r\n")
	if r.Total != 2 || r.Code != 2 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

// TestBlockCommentSpansLines verifies cross-line block-comment state is
// carried correctly across a ClassifyReader call spanning multiple lines.
func TestBlockCommentSpansLines(t *testing.T) {
	r := classifyText(t, cRules(t), "/* start\n"+"still comment\n"+"end */ code();\n")
	if r.Total != 3 {
		t.Fatalf("unexpected total: %+v", r)
	}
	if r.Comment != 2 {
		t.Fatalf("expected two pure comment lines, got %+v", r)
	}
	if r.Code != 1 {
		t.Fatalf("expected the closing line to count as code (has trailing code), got %+v", r)
	}
}

// TestTripleQuotedStringSpansLines verifies Python's triple-quoted string
// keeps classifying interior lines as code across a multi-line literal.
func TestTripleQuotedStringSpansLines(t *testing.T) {
	reg := langreg.NewRegistry()
	py, _ := reg.RulesFor(langreg.Python)
	r := classifyText(t, py, "x = \"\"\"\n"+"not a # comment\n"+"\"\"\"\n")
	if r.Total != 3 || r.Code != 3 || r.Comment != 0 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

// TestMaxLineLengthExceeded verifies the classifier reports the sentinel
// error rather than classifying a line beyond the configured bound.
func TestMaxLineLengthExceeded(t *testing.T) {
	engine := NewEngine(cRules(t))
	_, err := engine.ClassifyReader(strings.NewReader(strings.Repeat("x", 100)+"\n"), 10)
	if err == nil {
		t.Fatalf("expected max line length error")
	}
}
