package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danny/worldly/internal/archive"
	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/logger"
	"github.com/danny/worldly/internal/reconcile"
	"github.com/danny/worldly/internal/source/trakt"
)

// traktAPI is the slice of the Trakt client the syncer uses.
type traktAPI interface {
	History(ctx context.Context, page, limit int) ([]trakt.HistoryItem, error)
}

// watchStore is the slice of the watch repository the syncer uses.
type watchStore interface {
	Upsert(ctx context.Context, event *domain.WatchEvent) error
	ExistsByTraktID(ctx context.Context, traktID int64) (bool, error)
}

// TraktSyncer syncs the Trakt watch history. Every history event carries a
// stable id, so the whole history is walked each run and upserted; removed
// or edited plays converge on re-sync.
type TraktSyncer struct {
	client   traktAPI
	store    watchStore
	archive  archive.Store
	pageSize int
	delay    time.Duration
}

// NewTraktSyncer creates a Trakt syncer.
func NewTraktSyncer(client traktAPI, store watchStore, arc archive.Store, pageSize int, delay time.Duration) *TraktSyncer {
	return &TraktSyncer{client: client, store: store, archive: arc, pageSize: pageSize, delay: delay}
}

// Source returns "trakt".
func (s *TraktSyncer) Source() string { return "trakt" }

// Sync walks the history pages until a short page and upserts each event.
func (s *TraktSyncer) Sync(ctx context.Context) (*reconcile.Stats, error) {
	stats := &reconcile.Stats{Source: s.Source(), StartedAt: time.Now()}
	defer func() { stats.FinishedAt = time.Now() }()

	fetcher := &reconcile.Fetcher[trakt.HistoryItem]{
		Fetch: func(ctx context.Context, page int) ([]trakt.HistoryItem, error) {
			return s.client.History(ctx, page, s.pageSize)
		},
		PageSize: s.pageSize,
		Delay:    s.delay,
	}
	items, fetchErr := fetcher.Run(ctx, reconcile.KeepAll[trakt.HistoryItem])
	stats.Fetched = len(items)
	stats.FetchErr = fetchErr

	snapshot(ctx, s.archive, s.Source(), stats.StartedAt, items)

	for _, item := range items {
		exists, err := s.store.ExistsByTraktID(ctx, item.ID)
		if err != nil {
			stats.Failed++
			logger.CtxError(ctx, "history event %d lookup failed: %v", item.ID, err)
			continue
		}
		if err := s.store.Upsert(ctx, watchRow(item)); err != nil {
			stats.Failed++
			logger.CtxError(ctx, "history event %d upsert failed: %v", item.ID, err)
			continue
		}
		if exists {
			stats.Updated++
		} else {
			stats.Inserted++
		}
	}
	return stats, nil
}

// watchRow maps one history event onto the sink schema. Movies and episodes
// share the table; episodes carry the show title and numbering.
func watchRow(item trakt.HistoryItem) *domain.WatchEvent {
	row := &domain.WatchEvent{
		ID:        uuid.NewString(),
		TraktID:   item.ID,
		WatchedAt: item.WatchedAt,
		Action:    item.Action,
		Type:      item.Type,
	}
	switch {
	case item.Movie != nil:
		row.Title = item.Movie.Title
		row.Year = item.Movie.Year
		row.IMDBID = item.Movie.IDs.IMDB
		row.TMDBID = item.Movie.IDs.TMDB
	case item.Episode != nil:
		row.Title = item.Episode.Title
		row.Season = item.Episode.Season
		row.Episode = item.Episode.Number
		row.IMDBID = item.Episode.IDs.IMDB
		row.TMDBID = item.Episode.IDs.TMDB
		if item.Show != nil {
			row.ShowTitle = item.Show.Title
			row.Year = item.Show.Year
		}
	}
	return row
}
