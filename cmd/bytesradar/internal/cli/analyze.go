package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kenf1/bytes-radar/internal/config"
	"github.com/kenf1/bytes-radar/internal/filter"
	"github.com/kenf1/bytes-radar/internal/langreg"
	"github.com/kenf1/bytes-radar/internal/logging"
	"github.com/kenf1/bytes-radar/internal/orchestrator"
	"github.com/kenf1/bytes-radar/internal/progress"
	"github.com/kenf1/bytes-radar/internal/report"
	"github.com/kenf1/bytes-radar/internal/resolver"
)

// analyzeOptions holds the analyze subcommand's flag values in a flat
// struct bound directly to cobra flags.
type analyzeOptions struct {
	format       string
	output       string
	workers      int
	parallel     bool
	detailed     bool
	timeoutSeconds int64
	maxFileSize  int64
	minFileSize  int64
	includeGlob  string
	excludeGlob  string
	aggressive   bool
	includeTests bool
	includeDocs  bool
	includeHidden bool
	token        string
	configPath   string
	verbose      bool
}

// newAnalyzeCmd creates the analyze subcommand, which takes a remote
// reference rather than a local path.
func newAnalyzeCmd(registry *langreg.Registry) *cobra.Command {
	opts := analyzeOptions{
		format:         "table",
		workers:        runtime.NumCPU(),
		timeoutSeconds: 300,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze <reference>",
		Short: "Analyze a remote repository reference's line counts",
		Long: "analyze downloads <reference> as a gzip+tar archive and counts\n" +
			"total/code/comment/blank lines per language, streaming the\n" +
			"archive end to end without writing it to disk.\n\n" +
			"<reference> may be \"owner/repo\", \"owner/repo@ref\", a hosting\n" +
			"platform URL, or a direct .tar.gz/.tgz/.zip archive URL.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts, registry)
		},
	}

	flags := analyzeCmd.Flags()
	flags.StringVar(&opts.format, "format", opts.format, "output format: table, json, or csv")
	flags.StringVar(&opts.output, "output", opts.output, "write the report to this file in addition to stdout")
	flags.IntVar(&opts.workers, "workers", opts.workers, "worker count for --parallel mode")
	flags.BoolVar(&opts.parallel, "parallel", opts.parallel, "classify files with a concurrent worker pool (experimental)")
	flags.BoolVar(&opts.detailed, "detailed", opts.detailed, "include a per-file breakdown in the report")
	flags.Int64Var(&opts.timeoutSeconds, "timeout", opts.timeoutSeconds, "HTTP timeout in seconds for the archive download")
	flags.Int64Var(&opts.maxFileSize, "max-file-size", opts.maxFileSize, "skip files larger than this many bytes (0 = unbounded)")
	flags.Int64Var(&opts.minFileSize, "min-file-size", opts.minFileSize, "skip files smaller than this many bytes")
	flags.StringVar(&opts.includeGlob, "include", opts.includeGlob, "only analyze paths matching this glob")
	flags.StringVar(&opts.excludeGlob, "exclude", opts.excludeGlob, "skip paths matching this glob")
	flags.BoolVar(&opts.aggressive, "aggressive", opts.aggressive, "apply the aggressive binary/size filter preset")
	flags.BoolVar(&opts.includeTests, "include-tests", opts.includeTests, "count test files and directories")
	flags.BoolVar(&opts.includeDocs, "include-docs", opts.includeDocs, "count documentation files")
	flags.BoolVar(&opts.includeHidden, "include-hidden", opts.includeHidden, "count hidden files and directories")
	flags.StringVar(&opts.token, "token", opts.token, "access token for a private repository")
	flags.StringVar(&opts.configPath, "config", opts.configPath, "path to a bytesradar config YAML file")
	flags.BoolVar(&opts.verbose, "verbose", opts.verbose, "enable debug-level logging")

	return analyzeCmd
}

func runAnalyze(cmd *cobra.Command, reference string, opts analyzeOptions, registry *langreg.Registry) error {
	level := logging.LevelInfo
	if opts.verbose {
		level = logging.LevelDebug
	}
	logging.Setup(logging.Options{Level: level, Output: os.Stderr})

	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format != "table" && format != "json" && format != "csv" {
		return errors.New("unsupported format, allowed values: table, json, csv")
	}
	if opts.workers <= 0 {
		return errors.New("workers must be greater than 0")
	}

	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}

	token := opts.token
	if token == "" {
		token = cfg.HTTP.Token
	}

	// cfg already layers a changed --timeout flag over env and file values.
	timeoutSeconds := cfg.HTTP.TimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = config.Defaults().HTTP.TimeoutSeconds
	}
	timeout := time.Duration(timeoutSeconds) * time.Second

	maxFileSize := opts.maxFileSize
	if maxFileSize <= 0 {
		maxFileSize = cfg.Filter.MaxFileSize
	}
	minFileSize := opts.minFileSize
	if minFileSize <= 0 {
		minFileSize = cfg.Filter.MinFileSize
	}

	analyzeOpts := orchestrator.Options{
		Filter: filter.Options{
			IgnoreHidden:        !opts.includeHidden,
			IgnoreGitignoreLike: cfg.Filter.IgnoreGitignoreLike,
			MaxFileSize:         uint64OrZero(maxFileSize),
			MinFileSize:         uint64OrZero(minFileSize),
			IncludeTests:        opts.includeTests,
			IncludeDocs:         opts.includeDocs,
			IncludeHidden:       opts.includeHidden,
			CountGenerated:      cfg.Filter.CountGenerated,
			IncludePattern:      opts.includeGlob,
			ExcludePattern:      opts.excludeGlob,
			AllowLanguage:       languageSet(cfg.Filter.AllowLanguage, registry),
			DenyLanguage:        languageSet(cfg.Filter.DenyLanguage, registry),
			CustomIgnore:        cfg.Filter.CustomIgnore,
			AggressiveFilter:    opts.aggressive || cfg.Filter.AggressiveFilter,
		},
		MaxLineLength:           uint64OrZero(cfg.Filter.MaxLineLength),
		Detailed:                opts.detailed || cfg.Detailed,
		Timeout:                 timeout,
		MaxRedirects:            cfg.HTTP.MaxRedirects,
		UserAgent:               cfg.HTTP.UserAgent,
		UseCompression:          cfg.HTTP.UseCompression,
		RetryCount:              cfg.HTTP.RetryCount,
		Parallel:                opts.parallel || cfg.Parallel,
		WorkerCount:             opts.workers,
		Credentials:             &resolver.Credentials{Token: token},
		CountUnknownAsPlainText: cfg.Filter.CountUnknownAsPlainText,
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	analysis, err := orchestrator.Analyze(ctx, reference, analyzeOpts, registry, progress.NopSink{})
	if err != nil {
		return err
	}

	writer := cmd.OutOrStdout()
	switch format {
	case "table":
		if err := report.PrintTable(writer, analysis, registry); err != nil {
			return err
		}
	case "json":
		if err := report.PrintJSON(writer, analysis, registry); err != nil {
			return err
		}
	case "csv":
		if err := report.PrintCSV(writer, analysis, registry); err != nil {
			return err
		}
	}

	if opts.output != "" {
		switch format {
		case "json":
			if err := report.WriteJSONFile(opts.output, analysis, registry); err != nil {
				return err
			}
		case "csv":
			if err := report.WriteCSVFile(opts.output, analysis, registry); err != nil {
				return err
			}
		default:
			return fmt.Errorf("--output requires --format json or csv")
		}
		fmt.Fprintf(writer, "\nreport written to %s\n", opts.output)
	}

	return nil
}

func uint64OrZero(v int64) uint64 {
	if v <= 0 {
		return 0
	}
	return uint64(v)
}

// languageSet resolves config-file language names (matched case-insensitively
// against each language's display name) into the registry's LanguageID set
// filter.Options expects. Returns nil, not an empty map, when no name
// resolves to a language (including when names is empty or all blank) so
// the filter's len()-guarded allow/deny checks stay no-ops.
func languageSet(names []string, registry *langreg.Registry) map[langreg.LanguageID]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[langreg.LanguageID]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for _, rules := range registry.IterLanguages() {
			if strings.EqualFold(rules.DisplayName, name) {
				set[rules.ID] = true
				break
			}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
