package batch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRunPreservesOrderAndCollectsErrors(t *testing.T) {
	paths := []string{"a", "b", "c"}
	results := Run(context.Background(), paths, 0, func(_ context.Context, path string) error {
		if path == "b" {
			return errors.New("boom")
		}
		return nil
	})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, want := range paths {
		if results[i].Path != want {
			t.Errorf("results[%d].Path = %q, want %q", i, results[i].Path, want)
		}
	}
	if results[1].Err == nil {
		t.Error("expected results[1] (path b) to carry an error")
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Error("expected paths a and c to succeed")
	}
}

func TestFailedFiltersAndSortsByPath(t *testing.T) {
	results := []Result{
		{Path: "z", Err: errors.New("x")},
		{Path: "a", Err: nil},
		{Path: "m", Err: errors.New("y")},
	}
	failed := Failed(results)
	if len(failed) != 2 {
		t.Fatalf("len(failed) = %d, want 2", len(failed))
	}
	if failed[0].Path != "m" || failed[1].Path != "z" {
		t.Errorf("Failed() not sorted by path: %v", failed)
	}
}

func TestRunRespectsLimit(t *testing.T) {
	paths := []string{"a", "b", "c", "d"}
	var mu sync.Mutex
	running, peak := 0, 0
	results := Run(context.Background(), paths, 1, func(_ context.Context, path string) error {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		mu.Lock()
		running--
		mu.Unlock()
		return nil
	})
	if len(results) != len(paths) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(paths))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("unexpected error for %q: %v", r.Path, r.Err)
		}
	}
	if peak != 1 {
		t.Errorf("peak concurrency = %d, want 1", peak)
	}
}
