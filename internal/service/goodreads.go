package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/logger"
	"github.com/danny/worldly/internal/reconcile"
	"github.com/danny/worldly/internal/source/goodreads"
)

// bookStore is the slice of the book repository the loader uses.
type bookStore interface {
	ListKeys(ctx context.Context) ([][2]string, error)
	InsertBatch(ctx context.Context, books []domain.Book) error
}

// bookBatchSize bounds one sink insert; export files run to a few thousand
// rows at most.
const bookBatchSize = 100

// BookLoader loads the newest Goodreads library export into the sink.
// Goodreads exports carry no stable id, so rows are deduplicated on the
// (title, author) natural key and existing rows are never replaced.
type BookLoader struct {
	store     bookStore
	exportDir string
}

// NewBookLoader creates a Goodreads export loader.
func NewBookLoader(store bookStore, exportDir string) *BookLoader {
	return &BookLoader{store: store, exportDir: exportDir}
}

// Source returns "goodreads".
func (l *BookLoader) Source() string { return "goodreads" }

// Sync reads the newest export and inserts the rows the sink lacks.
func (l *BookLoader) Sync(ctx context.Context) (*reconcile.Stats, error) {
	stats := &reconcile.Stats{Source: l.Source(), StartedAt: time.Now()}
	defer func() { stats.FinishedAt = time.Now() }()

	path, err := goodreads.FindLatestExport(l.exportDir)
	if err != nil {
		return stats, fmt.Errorf("goodreads export missing: %w", err)
	}
	rows, err := goodreads.ReadExport(path)
	if err != nil {
		return stats, fmt.Errorf("goodreads export unreadable: %w", err)
	}
	stats.Fetched = len(rows)
	logger.CtxInfo(ctx, "loading %d rows from %s", len(rows), path)

	seen := reconcile.NewKeySet()
	keys, err := l.store.ListKeys(ctx)
	if err != nil {
		// The unique index on (title, author) still rejects duplicates;
		// they just surface as failed batches instead of skips.
		logger.CtxWarn(ctx, "could not read existing book keys, relying on unique index: %v", err)
	}
	for _, k := range keys {
		seen.Add(k[0], k[1])
	}

	var pending []domain.Book
	for _, row := range rows {
		if !seen.Add(row.Title, row.Author) {
			stats.Skipped++
			continue
		}
		pending = append(pending, domain.Book{
			ID:        uuid.NewString(),
			Title:     row.Title,
			Author:    row.Author,
			Rating:    row.Rating,
			DateRead:  row.DateRead,
			DateAdded: row.DateAdded,
			ISBN:      row.ISBN,
			Pages:     row.Pages,
			Format:    row.Format,
		})
	}

	for start := 0; start < len(pending); start += bookBatchSize {
		end := start + bookBatchSize
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[start:end]
		if err := l.store.InsertBatch(ctx, chunk); err != nil {
			stats.Failed += len(chunk)
			logger.CtxError(ctx, "book batch insert failed (%d rows): %v", len(chunk), err)
			continue
		}
		stats.Inserted += len(chunk)
	}
	return stats, nil
}
