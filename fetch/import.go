// Package fetch imports Doxygen search indexes from published documentation
// sites. It coordinates manifest discovery, concurrent rate-limited fetching
// of data files, merging and storage of the resulting sets.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/searchdata"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of data files fetched at once.
const DefaultConcurrency = 4

var _ symdex.Importer = (*Importer)(nil)

// Importer builds sets from a site's search directory.
type Importer struct {
	Fetcher     symdex.Fetcher
	Sets        symdex.SetService
	Entries     symdex.EntryService
	RateLimiter symdex.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	// Progress, if set, receives events as data files are fetched.
	Progress ProgressFunc

	// OnRetry, if set, is called before a failed fetch is retried.
	OnRetry RetryFunc
}

// ProgressEvent reports progress during an import.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event ProgressEvent)

// fileResult holds the outcome of fetching a single data file.
type fileResult struct {
	position int
	url      string
	raw      string
	entries  []*symdex.Entry
	err      error
}

// Import fetches the requested sections under req.URL and stores them as the
// set req.Name. A set whose stored content hash matches the fetched data is
// left untouched.
func (imp *Importer) Import(ctx context.Context, req symdex.ImportRequest) (*symdex.ImportResult, error) {
	if req.Name == "" {
		return nil, symdex.Errorf(symdex.EINVALID, "set name required")
	}
	if req.URL == "" {
		return nil, symdex.Errorf(symdex.EINVALID, "source URL required")
	}

	urls, err := imp.discover(ctx, req)
	if err != nil {
		return nil, err
	}

	results, err := imp.fetchAll(ctx, urls)
	if err != nil {
		return nil, err
	}

	payloads := make([]string, len(results))
	files := make([][]*symdex.Entry, len(results))
	for i, r := range results {
		payloads[i] = r.raw
		files[i] = r.entries
	}
	entries := Merge(files...)
	hash := ComputeHash(payloads...)

	result := &symdex.ImportResult{
		Files:   len(results),
		Entries: len(entries),
	}
	for _, e := range entries {
		result.References += len(e.References)
	}

	set, err := imp.findSet(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if set != nil && set.ContentHash == hash {
		result.Set = set
		result.Unchanged = true
		return result, nil
	}

	if set == nil {
		set = &symdex.Set{Name: req.Name, SourceURL: req.URL}
		if err := imp.Sets.CreateSet(ctx, set); err != nil {
			return nil, err
		}
		result.Created = true
	}

	if err := imp.Entries.ReplaceEntries(ctx, set.ID, entries); err != nil {
		return nil, fmt.Errorf("store entries: %w", err)
	}

	// The hash is recorded last so a failed write is retried on the next import.
	set, err = imp.Sets.UpdateSet(ctx, set.ID, symdex.SetUpdate{
		SourceURL:   &req.URL,
		ContentHash: &hash,
	})
	if err != nil {
		return nil, err
	}
	result.Set = set
	return result, nil
}

// discover returns the data file URLs to fetch for req. Without a manifest
// the URL itself is the only data file.
func (imp *Importer) discover(ctx context.Context, req symdex.ImportRequest) ([]string, error) {
	base, manifestURL, single := searchBase(req.URL)
	if single {
		return []string{req.URL}, nil
	}

	raw, err := imp.fetch(ctx, manifestURL)
	if symdex.ErrorCode(err) == symdex.ENOTFOUND {
		return []string{req.URL}, nil
	} else if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}

	manifest, err := searchdata.DecodeManifest(strings.NewReader(raw), searchdata.WithSource(manifestURL))
	if err != nil {
		return nil, err
	}

	names := req.Sections
	if len(names) == 0 {
		names = []string{symdex.SectionAll}
		if _, ok := manifest.Section(symdex.SectionAll); !ok {
			names = nil
		}
	}
	files, err := manifest.Files(names...)
	if err != nil {
		return nil, err
	}

	urls := make([]string, len(files))
	for i, f := range files {
		urls[i] = base + f
	}
	return dedupe(urls), nil
}

// searchBase splits rawURL into the search directory and its manifest URL.
// single reports that rawURL names one data file rather than a directory.
func searchBase(rawURL string) (base, manifest string, single bool) {
	path := rawURL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	switch {
	case strings.HasSuffix(path, "/"+searchdata.ManifestFile) || path == searchdata.ManifestFile:
		base = strings.TrimSuffix(path, searchdata.ManifestFile)
	case strings.HasSuffix(path, ".js"):
		return "", "", true
	case strings.HasSuffix(path, "/"):
		base = path
	default:
		base = path + "/"
	}
	return base, base + searchdata.ManifestFile, false
}

// fetchAll fetches and decodes urls concurrently. Results are returned in
// the order of urls. Any failed file fails the import, since a partial
// index would silently drop symbols.
func (imp *Importer) fetchAll(ctx context.Context, urls []string) ([]fileResult, error) {
	concurrency := imp.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	resultCh := make(chan fileResult, total)
	imp.notify(ProgressEvent{Type: ProgressStarted, Total: total})

	// The first failure cancels the files still in flight.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				r := imp.processURL(gctx, i, u)
				resultCh <- r
				return r.err
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results on this goroutine so Progress is never called
	// concurrently.
	results := make([]fileResult, total)
	var completed int
	var firstErr error
	for r := range resultCh {
		completed++
		results[r.position] = r

		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", r.url, r.err)
			}
			imp.notify(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, URL: r.url, Error: r.err})
			continue
		}
		imp.notify(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: r.url})
	}
	if firstErr != nil {
		return nil, firstErr
	}

	imp.notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return results, nil
}

// processURL fetches and decodes a single data file.
func (imp *Importer) processURL(ctx context.Context, position int, u string) fileResult {
	result := fileResult{position: position, url: u}

	raw, err := imp.fetch(ctx, u)
	if err != nil {
		result.err = err
		return result
	}

	entries, err := searchdata.Decode(strings.NewReader(raw), searchdata.WithSource(u))
	if err != nil {
		result.err = err
		return result
	}

	result.raw = raw
	result.entries = entries
	return result
}

// fetch waits for the host's rate limit and fetches u with retries.
func (imp *Importer) fetch(ctx context.Context, u string) (string, error) {
	if imp.RateLimiter != nil {
		if err := imp.RateLimiter.Wait(ctx, host(u)); err != nil {
			return "", err
		}
	}

	delays := imp.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetry(ctx, u, imp.Fetcher.Fetch, delays, imp.OnRetry)
}

func (imp *Importer) findSet(ctx context.Context, name string) (*symdex.Set, error) {
	sets, err := imp.Sets.FindSets(ctx, symdex.SetFilter{Name: &name, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("find set: %w", err)
	}
	if len(sets) == 0 {
		return nil, nil
	}
	return sets[0], nil
}

func (imp *Importer) notify(ev ProgressEvent) {
	if imp.Progress != nil {
		imp.Progress(ev)
	}
}

// host returns the host part of u, or "" for local paths.
func host(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return parsed.Host
}
