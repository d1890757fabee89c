// Package orchestrator wires the resolver, archive reader, filter,
// language registry, and classifier into the single public operation
// bytes-radar exposes: analyze one remote reference into a ProjectAnalysis.
package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kenf1/bytes-radar/internal/archive"
	"github.com/kenf1/bytes-radar/internal/filter"
	"github.com/kenf1/bytes-radar/internal/langreg"
	"github.com/kenf1/bytes-radar/internal/model"
	"github.com/kenf1/bytes-radar/internal/progress"
	"github.com/kenf1/bytes-radar/internal/radarerr"
	"github.com/kenf1/bytes-radar/internal/resolver"

	"github.com/kenf1/bytes-radar/internal/classify"
)

// Options is the flat option bag AnalyzeOptions describes, narrowed to the
// fields the orchestrator itself consumes directly (filter knobs are
// forwarded into filter.Options).
type Options struct {
	Filter filter.Options

	MaxLineLength uint64

	Detailed bool

	Timeout           time.Duration
	MaxRedirects      int
	UserAgent         string
	AcceptInvalidCerts bool
	UseCompression    bool
	Proxy             string
	Headers           map[string]string
	Credentials       *resolver.Credentials
	RetryCount        int

	Parallel    bool
	WorkerCount int

	CountUnknownAsPlainText bool
}

// retryBaseDelay and retryCapDelay bound the exponential backoff applied
// between retries of a single candidate URL.
const (
	retryBaseDelay = 500 * time.Millisecond
	retryCapDelay  = 8 * time.Second
)

// Analyze resolves ref to one or more candidate archive URLs, downloads
// and streams the first one that responds with 200, and returns the
// aggregated ProjectAnalysis.
func Analyze(ctx context.Context, ref string, opts Options, registry *langreg.Registry, sink progress.Sink) (*model.ProjectAnalysis, error) {
	if sink == nil {
		sink = progress.NopSink{}
	}

	requestID := uuid.NewString()
	logger := log.With().Str("request_id", requestID).Str("reference", ref).Logger()
	logger.Info().Msg("analysis started")

	httpClient := buildHTTPClient(opts)

	resolution, err := resolver.Resolve(ctx, ref, opts.Credentials, httpClient)
	if err != nil {
		logger.Error().Err(err).Msg("reference resolution failed")
		sink.OnError(radarerr.InvalidReference, err.Error())
		return nil, err
	}

	var tried []string
	for _, candidate := range resolution.Candidates {
		tried = append(tried, candidate.URL)
		logger.Debug().Str("candidate", candidate.URL).Msg("trying candidate")

		body, size, err := fetchWithRetry(ctx, httpClient, candidate, opts)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				cancelErr := radarerr.New(radarerr.Cancelled, "analysis cancelled")
				sink.OnError(radarerr.Cancelled, cancelErr.Error())
				return nil, cancelErr
			}
			if radarerr.Is(err, radarerr.Timeout) {
				logger.Error().Str("candidate", candidate.URL).Msg("request timed out")
				sink.OnError(radarerr.Timeout, err.Error())
				return nil, err
			}
			logger.Warn().Str("candidate", candidate.URL).Err(err).Msg("candidate failed, trying next")
			continue
		}

		analysis, analyzeErr := analyzeBody(ctx, resolution.ProjectName, body, size, opts, registry, sink)
		body.Close()
		if analyzeErr != nil {
			logger.Error().Err(analyzeErr).Msg("analysis failed")
			kind := radarerr.CorruptArchive
			var rerr *radarerr.Error
			if errors.As(analyzeErr, &rerr) {
				kind = rerr.Kind
			} else if errors.Is(analyzeErr, context.DeadlineExceeded) {
				kind = radarerr.Timeout
			}
			sink.OnError(kind, analyzeErr.Error())
			return nil, analyzeErr
		}
		logger.Info().Str("candidate", candidate.URL).Msg("analysis completed")
		return analysis, nil
	}

	branchErr := radarerr.New(radarerr.BranchAccessError, "no candidate archive URL succeeded").WithCandidates(tried)
	logger.Error().Strs("tried", tried).Msg("all candidates failed")
	sink.OnError(radarerr.BranchAccessError, branchErr.Error())
	return nil, branchErr
}

func buildHTTPClient(opts Options) *http.Client {
	client := &http.Client{Timeout: opts.Timeout}
	if opts.MaxRedirects > 0 {
		limit := opts.MaxRedirects
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= limit {
				return fmt.Errorf("stopped after %d redirects", limit)
			}
			return nil
		}
	}
	return client
}

// fetchWithRetry issues the GET for one candidate, retrying transport
// failures with exponential backoff (base 500ms, cap 8s). This is a small,
// bespoke retry loop rather than a pulled-in retry library.
func fetchWithRetry(ctx context.Context, client *http.Client, candidate resolver.Candidate, opts Options) (io.ReadCloser, *uint64, error) {
	var lastErr error
	delay := retryBaseDelay

	attempts := opts.RetryCount
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return nil, nil, radarerr.New(radarerr.Timeout, "request to %s exceeded the configured timeout", candidate.URL)
				}
				return nil, nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if delay > retryCapDelay {
				delay = retryCapDelay
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate.URL, nil)
		if err != nil {
			return nil, nil, err
		}
		if opts.UserAgent != "" {
			req.Header.Set("User-Agent", opts.UserAgent)
		}
		if opts.UseCompression {
			req.Header.Set("Accept-Encoding", "gzip")
		}
		if candidate.AuthHeader != "" {
			req.Header.Set("Authorization", candidate.AuthHeader)
		}
		for k, v := range opts.Headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			var netErr net.Error
			if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
				return nil, nil, radarerr.New(radarerr.Timeout, "request to %s exceeded the configured timeout", candidate.URL)
			}
			lastErr = radarerr.Wrap(radarerr.NetworkError, err, "request to %s failed", candidate.URL)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			var size *uint64
			if resp.ContentLength > 0 {
				s := uint64(resp.ContentLength)
				size = &s
			}
			return resp.Body, size, nil
		case resp.StatusCode == http.StatusUnauthorized:
			resp.Body.Close()
			return nil, nil, radarerr.New(radarerr.AuthError, "authentication failed for %s", candidate.URL)
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
			resp.Body.Close()
			return nil, nil, radarerr.New(radarerr.BranchAccessError, "candidate %s returned %d", candidate.URL, resp.StatusCode)
		default:
			resp.Body.Close()
			lastErr = radarerr.New(radarerr.NetworkError, "candidate %s returned %d", candidate.URL, resp.StatusCode)
		}
	}

	return nil, nil, lastErr
}

// analyzeBody hands the response body to the archive reader and folds
// accepted entries into a ProjectAnalysis, sequentially by default or via
// the experimental-parallel worker pool when opts.Parallel is set.
func analyzeBody(ctx context.Context, projectName string, body io.Reader, totalSize *uint64, opts Options, registry *langreg.Registry, sink progress.Sink) (*model.ProjectAnalysis, error) {
	reader, err := archive.New(body)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	f := filter.New(opts.Filter, registry)

	analysis := model.New(projectName, opts.Detailed)

	if opts.Parallel {
		return analyzeParallel(ctx, reader, f, opts, registry, analysis, totalSize, sink)
	}
	return analyzeSequential(ctx, reader, f, opts, registry, analysis, totalSize, sink)
}

func analyzeSequential(ctx context.Context, reader *archive.Reader, f *filter.Filter, opts Options, registry *langreg.Registry, analysis *model.ProjectAnalysis, totalSize *uint64, sink progress.Sink) (*model.ProjectAnalysis, error) {
	var bytesRead, filesDone uint64
	var gitignoreLoaded bool

	for {
		if err := ctx.Err(); err != nil {
			return nil, radarerr.New(radarerr.Cancelled, "analysis cancelled")
		}

		entry, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		handled, err := loadRootGitignore(entry, f, opts, &gitignoreLoaded)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}

		fm, process, err := classifyEntry(entry, f, opts, registry)
		if err != nil {
			return nil, err
		}
		if !process {
			if err := archive.Skip(entry); err != nil {
				return nil, err
			}
			continue
		}

		analysis.AddFile(fm)
		bytesRead += fm.SizeBytes
		filesDone++
		sink.OnProgress(bytesRead, totalSize, filesDone, fm.Path)
	}

	summary := analysis.Summarize(registry)
	sink.OnComplete(summary)
	return analysis, nil
}

// analyzeParallel partitions accepted entries across a bounded worker pool
// using errgroup; each worker adds its FileMetrics to the shared analysis
// under a mutex. Aggregate addition is commutative, so worker completion
// order never affects the per-language totals; the detailed Files list, when
// kept, is in completion order rather than tar order.
func analyzeParallel(ctx context.Context, reader *archive.Reader, f *filter.Filter, opts Options, registry *langreg.Registry, analysis *model.ProjectAnalysis, totalSize *uint64, sink progress.Sink) (*model.ProjectAnalysis, error) {
	workers := opts.WorkerCount
	if workers <= 0 {
		workers = 4
	}

	type entryJob struct {
		path string
		data []byte
	}

	jobs := make(chan entryJob, workers*4)
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var bytesRead, filesDone uint64
	var gitignoreLoaded bool

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for job := range jobs {
				fm, process, err := classifyData(job.path, job.data, opts, registry)
				if err != nil {
					return err
				}
				if !process {
					continue
				}

				mu.Lock()
				analysis.AddFile(fm)
				bytesRead += fm.SizeBytes
				filesDone++
				sink.OnProgress(bytesRead, totalSize, filesDone, fm.Path)
				mu.Unlock()
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for {
			if err := gctx.Err(); err != nil {
				return err
			}

			entry, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			handled, err := loadRootGitignore(entry, f, opts, &gitignoreLoaded)
			if err != nil {
				return err
			}
			if handled {
				continue
			}

			if !f.AcceptPath(entry.Path) || !f.AcceptSize(uint64(entry.Size)) {
				if err := archive.Skip(entry); err != nil {
					return err
				}
				continue
			}

			data, err := archive.ReadAll(entry)
			if err != nil {
				return err
			}
			jobs <- entryJob{path: entry.Path, data: data}
		}
	})

	if err := g.Wait(); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, radarerr.New(radarerr.Cancelled, "analysis cancelled")
		}
		return nil, err
	}

	summary := analysis.Summarize(registry)
	sink.OnComplete(summary)
	return analysis, nil
}

// loadRootGitignore checks one tar entry against the archive's root-level
// .gitignore before it reaches the path filter, loading its patterns into
// f the first time it's seen. Returns handled=true when the entry was the
// .gitignore itself, so the caller skips normal filtering/counting for it.
func loadRootGitignore(entry *archive.Entry, f *filter.Filter, opts Options, loaded *bool) (bool, error) {
	if *loaded || !opts.Filter.IgnoreGitignoreLike || !filter.RootGitignorePath(entry.Path) {
		return false, nil
	}

	data, err := archive.ReadAll(entry)
	if err != nil {
		return false, err
	}

	f.SetGitignorePatterns(filter.ParseGitignorePatterns(data))
	*loaded = true
	return true, nil
}

// classifyEntry applies the path+size filter, and when accepted, reads,
// detects language, and classifies the entry's bytes into FileMetrics.
// Returns process=false when the filter rejected the entry (caller must
// still drain its reader to keep the tar stream aligned).
func classifyEntry(entry *archive.Entry, f *filter.Filter, opts Options, registry *langreg.Registry) (model.FileMetrics, bool, error) {
	if !f.AcceptPath(entry.Path) {
		return model.FileMetrics{}, false, nil
	}
	if !f.AcceptSize(uint64(entry.Size)) {
		return model.FileMetrics{}, false, nil
	}

	data, err := archive.ReadAll(entry)
	if err != nil {
		return model.FileMetrics{}, false, err
	}

	return classifyData(entry.Path, data, opts, registry)
}

// classifyData detects language and classifies an already-read file's
// bytes into FileMetrics. Shared by the sequential and experimental-
// parallel paths so neither re-filters nor re-reads bytes the other
// already handled.
func classifyData(path string, data []byte, opts Options, registry *langreg.Registry) (model.FileMetrics, bool, error) {
	lang, known := registry.LookupByPath(path)
	if !known {
		if !opts.CountUnknownAsPlainText {
			return model.FileMetrics{}, false, nil
		}
		lang = langreg.PlainText
	}

	rules, _ := registry.RulesFor(lang)

	engine := classify.NewEngine(rules)
	result, err := engine.ClassifyReader(bytes.NewReader(data), opts.MaxLineLength)

	fm := model.FileMetrics{
		Path:      path,
		SizeBytes: uint64(len(data)),
		Language:  lang,
	}

	if errors.Is(err, classify.ErrMaxLineLengthExceeded) {
		if !opts.Filter.CountGenerated {
			return model.FileMetrics{}, false, nil
		}
		fm.Classified = false
		fm.Generated = true
		return fm, true, nil
	}
	if err != nil {
		return model.FileMetrics{}, false, err
	}

	fm.Total = result.Total
	fm.Code = result.Code
	fm.Comment = result.Comment
	fm.Blank = result.Blank
	fm.Classified = true

	return fm, true, nil
}
