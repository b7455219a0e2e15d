// Package reconcile implements the incremental-sync reconciliation
// primitives shared by every source loader: paginated fetching with early
// stop, watermark tracking for time-ordered sources, and natural-key
// deduplication for unordered ones.
package reconcile

import (
	"context"
	"time"

	"github.com/danny/worldly/internal/logger"
)

// PageFunc fetches one page of records from a remote source. Pages are
// numbered from 1 unless the Fetcher is configured otherwise.
type PageFunc[T any] func(ctx context.Context, page int) ([]T, error)

// FilterFunc inspects a fetched page and returns the records worth keeping
// plus whether later pages can still contain new data. Time-ordered sources
// return more=false as soon as a page yields a record at or behind the
// watermark; unordered sources always return more=true and rely on page
// exhaustion.
type FilterFunc[T any] func(page []T) (keep []T, more bool)

// Fetcher drives a paginated remote API until exhaustion. A page-fetch
// failure ends the sequence with the records gathered so far; re-running a
// sync is cheap, so a lost page is "no more data", never a fatal abort.
type Fetcher[T any] struct {
	// Fetch retrieves one page. Required.
	Fetch PageFunc[T]

	// Delay is the fixed pause before each subsequent page fetch.
	Delay time.Duration

	// PageSize, when set, stops the loop after a short page: the source
	// has no further pages.
	PageSize int

	// StartPage overrides the first page number (default 1).
	StartPage int
}

// Run pages through the source, passing every non-empty page to filter and
// accumulating the kept records. It returns the partial result together
// with the error that terminated the loop early, if any; the caller logs
// it and proceeds with what was fetched.
func (f *Fetcher[T]) Run(ctx context.Context, filter FilterFunc[T]) ([]T, error) {
	var out []T
	page := f.StartPage
	if page <= 0 {
		page = 1
	}

	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		records, err := f.Fetch(ctx, page)
		if err != nil {
			logger.CtxWarn(ctx, "page %d fetch failed, stopping with partial result: %v", page, err)
			return out, err
		}
		if len(records) == 0 {
			return out, nil
		}

		keep, more := filter(records)
		out = append(out, keep...)
		if !more {
			return out, nil
		}
		if f.PageSize > 0 && len(records) < f.PageSize {
			return out, nil
		}

		page++
		if f.Delay > 0 {
			select {
			case <-time.After(f.Delay):
			case <-ctx.Done():
				return out, ctx.Err()
			}
		}
	}
}

// KeepAll is a FilterFunc that keeps every record and never stops early.
func KeepAll[T any](page []T) ([]T, bool) {
	return page, true
}
