// Package cache wraps a per-language extractor with content-addressed,
// single-slot memoization keyed on (source_tree_path, fingerprint)
// (spec.md §4.9), mirroring the single-slot-with-invalidate shape of the
// teacher's providers/base/cache.go ASTCache but generalized to any
// extraction result type and narrowed to one slot per Cache instance.
package cache

import (
	"context"
	"sync"
)

// FingerprintFunc computes the content-addressed digest of path. Extractors
// pass fingerprint.Compute (restricted to their language's extensions).
type FingerprintFunc func(path string) (string, error)

// ExtractFunc is the wrapped per-language extractor.
type ExtractFunc[T any] func(ctx context.Context, path string) (T, error)

// inflight tracks one extraction in progress for a given fingerprint, so
// concurrent callers against the same (path, fingerprint) pair wait on the
// same call instead of invoking the extractor more than once.
type inflight[T any] struct {
	done   chan struct{}
	result T
	err    error
}

// Cache is a single-slot memoizing wrapper. Build one with New; the zero
// value has no fingerprint or extract function and is not usable.
type Cache[T any] struct {
	mu          sync.Mutex
	fingerprint FingerprintFunc
	extract     ExtractFunc[T]

	path        string
	fp          string
	result      T
	has         bool
	running     *inflight[T]
}

// New builds a Cache wrapping extract, using fp to compute fingerprints.
func New[T any](fp FingerprintFunc, extract ExtractFunc[T]) *Cache[T] {
	return &Cache[T]{fingerprint: fp, extract: extract}
}

// Get returns the memoized result for path if its fingerprint matches the
// stored one; otherwise it invokes the wrapped extractor, publishes the
// result atomically on success, and returns it. A nil interface result (T an
// interface type holding nil) and a non-nil error are never cached, so a
// subsequent call re-invokes; any other result with a nil error, including a
// typed nil pointer, is cached.
func (c *Cache[T]) Get(ctx context.Context, path string) (T, error) {
	fp, err := c.fingerprint(path)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	if c.has && c.path == path && c.fp == fp {
		result := c.result
		c.mu.Unlock()
		return result, nil
	}

	if c.running != nil && c.path == path && c.fp == fp {
		run := c.running
		c.mu.Unlock()
		<-run.done
		return run.result, run.err
	}

	run := &inflight[T]{done: make(chan struct{})}
	c.running = run
	c.path = path
	c.fp = fp
	c.mu.Unlock()

	result, extractErr := c.extract(ctx, path)
	run.result, run.err = result, extractErr
	close(run.done)

	c.mu.Lock()
	if c.running == run {
		c.running = nil
		if extractErr == nil && any(result) != nil {
			c.result = result
			c.has = true
		} else {
			c.has = false
		}
	}
	c.mu.Unlock()

	return result, extractErr
}

// Invalidate clears the memoized slot unconditionally.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.has = false
	var zero T
	c.result = zero
	c.path = ""
	c.fp = ""
}

// IsCached reports whether a slot exists whose path and recomputed
// fingerprint match path's current fingerprint.
func (c *Cache[T]) IsCached(path string) bool {
	fp, err := c.fingerprint(path)
	if err != nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.has && c.path == path && c.fp == fp
}
