package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/logger"
	"github.com/danny/worldly/internal/reconcile"
	"github.com/danny/worldly/internal/source/letterboxd"
)

// filmStore is the slice of the film repository the loader uses.
type filmStore interface {
	ListKeys(ctx context.Context, shelf domain.FilmShelf) ([][2]string, error)
	InsertBatch(ctx context.Context, films []domain.Film) error
}

// filmBatchSize bounds one sink insert.
const filmBatchSize = 100

// FilmLoader loads both Letterboxd export shelves (watched.csv and
// watchlist.csv). Each shelf has its own (name, year) natural key space;
// existing rows are never replaced.
type FilmLoader struct {
	store     filmStore
	exportDir string
}

// NewFilmLoader creates a Letterboxd export loader.
func NewFilmLoader(store filmStore, exportDir string) *FilmLoader {
	return &FilmLoader{store: store, exportDir: exportDir}
}

// Source returns "letterboxd".
func (l *FilmLoader) Source() string { return "letterboxd" }

// Sync loads both shelves. It fails only when neither export file exists;
// one missing shelf is logged and skipped.
func (l *FilmLoader) Sync(ctx context.Context) (*reconcile.Stats, error) {
	stats := &reconcile.Stats{Source: l.Source(), StartedAt: time.Now()}
	defer func() { stats.FinishedAt = time.Now() }()

	loaded := 0
	for _, shelf := range []domain.FilmShelf{domain.ShelfWatched, domain.ShelfWatchlist} {
		path, err := letterboxd.ExportPath(l.exportDir, string(shelf))
		if err != nil {
			logger.CtxWarn(ctx, "skipping shelf %s: %v", shelf, err)
			continue
		}
		if err := l.loadShelf(ctx, shelf, path, stats); err != nil {
			return stats, err
		}
		loaded++
	}
	if loaded == 0 {
		return stats, fmt.Errorf("no letterboxd exports found in %s", l.exportDir)
	}
	return stats, nil
}

func (l *FilmLoader) loadShelf(ctx context.Context, shelf domain.FilmShelf, path string, stats *reconcile.Stats) error {
	rows, err := letterboxd.ReadExport(path)
	if err != nil {
		return fmt.Errorf("letterboxd export unreadable: %w", err)
	}
	stats.Fetched += len(rows)
	logger.CtxInfo(ctx, "loading %d rows from %s", len(rows), path)

	seen := reconcile.NewKeySet()
	keys, err := l.store.ListKeys(ctx, shelf)
	if err != nil {
		logger.CtxWarn(ctx, "could not read existing film keys for %s, relying on unique index: %v", shelf, err)
	}
	for _, k := range keys {
		seen.Add(k[0], k[1])
	}

	var pending []domain.Film
	for _, row := range rows {
		if !seen.Add(row.Name, row.Year) {
			stats.Skipped++
			continue
		}
		pending = append(pending, domain.Film{
			ID:            uuid.NewString(),
			Name:          row.Name,
			Year:          row.Year,
			Shelf:         shelf,
			WatchedOn:     row.WatchedOn,
			Rating:        row.Rating,
			LetterboxdURI: row.LetterboxdURI,
		})
	}

	for start := 0; start < len(pending); start += filmBatchSize {
		end := start + filmBatchSize
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[start:end]
		if err := l.store.InsertBatch(ctx, chunk); err != nil {
			stats.Failed += len(chunk)
			logger.CtxError(ctx, "film batch insert failed (%d rows): %v", len(chunk), err)
			continue
		}
		stats.Inserted += len(chunk)
	}
	return nil
}
