package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/weavebio/xmlgraph/internal/extract"
	"github.com/weavebio/xmlgraph/internal/graph"
)

// Discover lists the files in dir matching pattern, sorted by path so runs
// are reproducible. An empty pattern means "*.xml". Directories are
// skipped.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.xml"
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("ingest: glob %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// FileResult holds the outcome of one file within a run.
type FileResult struct {
	Path          string
	Nodes         int
	Relationships int
	Duration      time.Duration
	Err           error
}

// Summary aggregates per-file results into run totals. Failed files do
// not contribute to the node and relationship counts.
type Summary struct {
	Files         int `json:"files"`
	Failed        int `json:"failed"`
	Nodes         int `json:"nodes"`
	Relationships int `json:"relationships"`
}

// Summarize folds per-file results into a Summary.
func Summarize(results []FileResult) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.Nodes += r.Nodes
		s.Relationships += r.Relationships
	}
	return s
}

// Options configures a Pipeline run.
type Options struct {
	// Workers caps concurrent file extractions. Zero or negative means
	// one worker per CPU.
	Workers int

	// ContinueOnError records per-file failures in the results and keeps
	// going instead of canceling the rest of the run.
	ContinueOnError bool
}

// Pipeline extracts XML files in parallel and writes each resulting
// subgraph to a single store. Store implementations must therefore
// tolerate concurrent CreateSubgraph calls.
type Pipeline struct {
	cfg      *extract.Config
	store    graph.Store
	opts     Options
	progress *ProgressReporter
}

// NewPipeline creates a Pipeline wired with a ProgressReporter.
func NewPipeline(cfg *extract.Config, store graph.Store, opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Pipeline{
		cfg:      cfg,
		store:    store,
		opts:     opts,
		progress: NewProgressReporter(),
	}
}

// Progress returns a channel that emits per-file progress events.
func (p *Pipeline) Progress() <-chan ProgressEvent {
	return p.progress.Subscribe()
}

// Close shuts down the progress reporter. Callers should invoke this when
// the pipeline is no longer needed.
func (p *Pipeline) Close() {
	p.progress.Close()
}

// Run processes every file, at most Workers at a time, and returns results
// in input order. It uses errgroup.WithContext so that the first failure
// cancels the derived context, causing remaining work to be abandoned
// promptly. With ContinueOnError set, failures are recorded per file and
// the run continues; Run then returns a nil error unless the parent
// context is canceled.
func (p *Pipeline) Run(ctx context.Context, files []string) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	for _, path := range files {
		p.progress.Emit(ProgressEvent{Path: path, Status: ProgressPending})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, path := range files {
		g.Go(func() error {
			res := p.processFile(gctx, path)
			results[i] = res

			if res.Err != nil {
				p.progress.Emit(ProgressEvent{
					Path:    path,
					Status:  ProgressFailed,
					Message: res.Err.Error(),
				})
				if p.opts.ContinueOnError {
					log.Printf("WARNING: %s failed, continuing: %v", path, res.Err)
					return nil
				}
				return res.Err // triggers context cancellation for other goroutines
			}

			p.progress.Emit(ProgressEvent{
				Path:    path,
				Status:  ProgressComplete,
				Message: fmt.Sprintf("%d nodes, %d relationships", res.Nodes, res.Relationships),
			})
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

func (p *Pipeline) processFile(ctx context.Context, path string) FileResult {
	start := time.Now()
	p.progress.Emit(ProgressEvent{Path: path, Status: ProgressWorking})

	// A failure elsewhere cancels the group context; bail before doing work.
	if err := ctx.Err(); err != nil {
		return FileResult{Path: path, Err: err, Duration: time.Since(start)}
	}

	sg, err := extract.ExtractFile(path, p.cfg)
	if err != nil {
		return FileResult{Path: path, Err: err, Duration: time.Since(start)}
	}

	if err := p.store.CreateSubgraph(ctx, sg); err != nil {
		return FileResult{
			Path:     path,
			Err:      fmt.Errorf("ingest: store %s: %w", path, err),
			Duration: time.Since(start),
		}
	}

	return FileResult{
		Path:          path,
		Nodes:         len(sg.Nodes),
		Relationships: len(sg.Relationships),
		Duration:      time.Since(start),
	}
}
