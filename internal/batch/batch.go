// Package batch fans a rewrite invocation out across a list of
// independent target files (spec §4.14 — component C14). It mirrors the
// teacher's internal/agent.RunMetricsParallel use of errgroup to run
// independent units of work concurrently, but here the concurrency is
// purely at the file level: each file's own rewrite pass stays the
// single-threaded, side-effect-free transformation §5 requires, and every
// goroutine shares the same already-built, immutable ImportDB.
package batch

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Result pairs a path with the error its rewrite invocation produced, if
// any.
type Result struct {
	Path string
	Err  error
}

// Run invokes fn once per path, bounded to limit concurrent goroutines
// (limit <= 0 means unbounded). Every path runs regardless of other
// paths failing — a broken file must not prevent the rest of a batch
// from being processed. Results are returned in the same order as
// paths, not completion order.
func Run(ctx context.Context, paths []string, limit int, fn func(ctx context.Context, path string) error) []Result {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	var mu sync.Mutex
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			err := fn(gctx, path)
			mu.Lock()
			results[i] = Result{Path: path, Err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Failed returns the subset of results that produced an error, sorted by
// path for deterministic reporting.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
