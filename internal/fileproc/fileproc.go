// Package fileproc provides concurrent per-file processing. Each file is
// one independent unit of work; a failing file is recorded and skipped
// without aborting the others.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// FileError records a failure while processing one file.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// FileErrors collects failures from multiple files. Safe for concurrent use.
type FileErrors struct {
	mu     sync.Mutex
	Errors []FileError
}

// Add appends an error to the collection.
func (e *FileErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, FileError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *FileErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *FileErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	default:
		return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
	}
}

// DefaultWorkerMultiplier is applied to NumCPU for the worker count.
// 2x works well for mixed I/O and CGO parsing workloads.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed, success or not.
type ProgressFunc func()

// Map processes files in parallel and returns the successful results in
// arbitrary order, plus the per-file errors. Workers default to 2x NumCPU.
func Map[T any](ctx context.Context, files []string, fn func(string) (T, error)) ([]T, *FileErrors) {
	return MapN(ctx, files, 0, fn, nil)
}

// MapWithProgress is Map with a progress callback.
func MapWithProgress[T any](ctx context.Context, files []string, fn func(string) (T, error), onProgress ProgressFunc) ([]T, *FileErrors) {
	return MapN(ctx, files, 0, fn, onProgress)
}

// MapN processes files with a configurable worker count. If maxWorkers is
// <= 0 it defaults to 2x NumCPU. Individual file errors never stop the
// pool; context cancellation records the remaining files as failed.
func MapN[T any](ctx context.Context, files []string, maxWorkers int, fn func(string) (T, error), onProgress ProgressFunc) ([]T, *FileErrors) {
	if len(files) == 0 {
		return nil, nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, 0, len(files))
	errs := &FileErrors{}
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for _, path := range files {
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				errs.Add(path, err)
				if onProgress != nil {
					onProgress()
				}
				return
			}

			result, err := fn(path)
			if onProgress != nil {
				onProgress()
			}
			if err != nil {
				errs.Add(path, err)
				return
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}
