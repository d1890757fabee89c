// Package progress defines the collaborator interface the orchestrator
// reports progress through — consumed by CLI/report layers, never
// implemented by the core.
package progress

import (
	"github.com/kenf1/bytes-radar/internal/model"
	"github.com/kenf1/bytes-radar/internal/radarerr"
)

// Sink receives progress callbacks during one analysis.
type Sink interface {
	// OnProgress is invoked after each processed entry.
	OnProgress(bytesRead uint64, bytesTotal *uint64, filesDone uint64, currentPath string)
	// OnComplete is invoked once, after the analysis finishes successfully.
	OnComplete(summary model.Summary)
	// OnError is invoked once, if the analysis fails.
	OnError(kind radarerr.Kind, message string)
}

// NopSink discards every callback. Used as the default when the caller
// supplies no Sink, e.g. when output is not a terminal.
type NopSink struct{}

func (NopSink) OnProgress(uint64, *uint64, uint64, string) {}
func (NopSink) OnComplete(model.Summary)                   {}
func (NopSink) OnError(radarerr.Kind, string)               {}
