// Package cli provides bytes-radar's command-line entry point and
// subcommand wiring: root.go assembles the subcommands, one file per
// subcommand.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kenf1/bytes-radar/internal/langreg"
	"github.com/kenf1/bytes-radar/internal/radarerr"
)

// Execute assembles the root command and runs it. version is injected by
// main so release builds can stamp it via -ldflags.
func Execute(version string) error {
	registry := langreg.NewRegistry()
	rootCmd := newRootCmd(version, registry)
	return rootCmd.Execute()
}

// newRootCmd creates the root command and registers every subcommand.
func newRootCmd(version string, registry *langreg.Registry) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bytesradar",
		Short: "Streaming line-count analysis for a remote source archive",
		Long: "bytesradar downloads a project's source as a gzip+tar archive and\n" +
			"counts total/code/comment/blank lines per language, without ever\n" +
			"writing the archive to disk.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newAnalyzeCmd(registry))

	return rootCmd
}

// ExitCode maps a returned error onto the process exit code convention:
// 0 success, 1 generic, 2 invalid argument, 3 network error,
// 4 not found/branch access, 5 timeout.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch {
	case radarerr.Is(err, radarerr.InvalidReference):
		return 2
	case radarerr.Is(err, radarerr.NetworkError), radarerr.Is(err, radarerr.CorruptArchive):
		return 3
	case radarerr.Is(err, radarerr.BranchAccessError), radarerr.Is(err, radarerr.AuthError):
		return 4
	case radarerr.Is(err, radarerr.Timeout):
		return 5
	default:
		return 1
	}
}
