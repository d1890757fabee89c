// Package logging configures bytes-radar's structured logger, grounded on
// QTest's cmd/cli/main.go zerolog setup (global zerolog.Logger, console
// writer for interactive use, Unix time format).
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level mirrors the subset of zerolog levels the CLI exposes via --verbose.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Options configures the process-wide logger.
type Options struct {
	Level  Level
	JSON   bool // true for machine-readable output, false for ConsoleWriter
	Output io.Writer
}

// Setup installs the configured logger as the package-wide log.Logger, the
// same global-logger convention QTest's CLI and worker entrypoints use.
func Setup(opts Options) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var writer io.Writer = out
	if !opts.JSON {
		writer = zerolog.ConsoleWriter{Out: out}
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger().Level(parseLevel(opts.Level))
}

func parseLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Nop returns a logger that discards everything, used by library callers
// (e.g. tests) that want bytes-radar to stay silent.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
