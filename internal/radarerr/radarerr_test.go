package radarerr

import (
	"errors"
	"testing"
)

func TestIsMatchesKind(t *testing.T) {
	err := New(NetworkError, "connection refused")
	if !Is(err, NetworkError) {
		t.Fatalf("expected Is to match NetworkError")
	}
	if Is(err, Timeout) {
		t.Fatalf("expected Is to not match Timeout")
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CorruptArchive, cause, "bad header")
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to see through to cause")
	}
}

func TestBranchAccessErrorCarriesCandidates(t *testing.T) {
	err := New(BranchAccessError, "no branch matched").WithCandidates([]string{"a", "b"})
	if len(err.Candidates) != 2 {
		t.Fatalf("expected two candidates, got %d", len(err.Candidates))
	}
	if err.Error() == "" {
		t.Fatalf("expected non-empty error string")
	}
}
