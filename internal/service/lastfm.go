package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danny/worldly/internal/archive"
	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/logger"
	"github.com/danny/worldly/internal/reconcile"
	"github.com/danny/worldly/internal/source/lastfm"
)

// lastfmAPI is the slice of the Last.fm client the syncer uses.
type lastfmAPI interface {
	RecentTracks(ctx context.Context, page, limit int) ([]lastfm.Track, error)
}

// scrobbleStore is the slice of the scrobble repository the syncer uses.
type scrobbleStore interface {
	reconcile.CursorStore
	InsertBatch(ctx context.Context, scrobbles []domain.Scrobble) error
}

// LastfmSyncer incrementally syncs Last.fm listens. Listens arrive newest
// first, so the fetch stops at the first page containing a listen at or
// behind the sink's date_uts watermark.
type LastfmSyncer struct {
	client    lastfmAPI
	store     scrobbleStore
	archive   archive.Store
	pageSize  int
	delay     time.Duration
	batchSize int
}

// NewLastfmSyncer creates a Last.fm syncer.
// Parameters:
//   - client: Last.fm API client.
//   - store: scrobble repository.
//   - arc: raw-payload archive; nil disables snapshots.
//   - pageSize: tracks per API page.
//   - delay: pause between page fetches.
//   - batchSize: rows per sink insert.
//
// Returns:
//   - *LastfmSyncer: configured syncer.
func NewLastfmSyncer(client lastfmAPI, store scrobbleStore, arc archive.Store, pageSize int, delay time.Duration, batchSize int) *LastfmSyncer {
	return &LastfmSyncer{
		client:    client,
		store:     store,
		archive:   arc,
		pageSize:  pageSize,
		delay:     delay,
		batchSize: batchSize,
	}
}

// Source returns "lastfm".
func (s *LastfmSyncer) Source() string { return "lastfm" }

// Sync fetches listens newer than the watermark and inserts them.
func (s *LastfmSyncer) Sync(ctx context.Context) (*reconcile.Stats, error) {
	stats := &reconcile.Stats{Source: s.Source(), StartedAt: time.Now()}
	defer func() { stats.FinishedAt = time.Now() }()

	watermark := reconcile.Watermark(ctx, s.store)
	logger.CtxInfo(ctx, "syncing listens newer than watermark %d", watermark)

	fetcher := &reconcile.Fetcher[lastfm.Track]{
		Fetch: func(ctx context.Context, page int) ([]lastfm.Track, error) {
			return s.client.RecentTracks(ctx, page, s.pageSize)
		},
		Delay:    s.delay,
		PageSize: s.pageSize,
	}

	tracks, fetchErr := fetcher.Run(ctx, func(page []lastfm.Track) ([]lastfm.Track, bool) {
		stats.Fetched += len(page)
		keep := make([]lastfm.Track, 0, len(page))
		more := true
		for _, t := range page {
			// Now-playing entries have no timestamp yet; the next run
			// picks them up once they land in history.
			if t.NowPlaying || t.DateUTS == 0 {
				stats.Skipped++
				continue
			}
			if !reconcile.IsNew(t.DateUTS, watermark) {
				stats.Skipped++
				more = false
				continue
			}
			keep = append(keep, t)
		}
		return keep, more
	})
	stats.FetchErr = fetchErr

	snapshot(ctx, s.archive, s.Source(), stats.StartedAt, tracks)

	scrobbles := make([]domain.Scrobble, len(tracks))
	for i, t := range tracks {
		scrobbles[i] = domain.Scrobble{
			ID:         uuid.NewString(),
			ArtistName: t.ArtistName,
			ArtistURL:  t.ArtistURL,
			ArtistMBID: t.ArtistMBID,
			TrackName:  t.TrackName,
			TrackURL:   t.TrackURL,
			TrackMBID:  t.TrackMBID,
			AlbumName:  t.AlbumName,
			AlbumMBID:  t.AlbumMBID,
			Loved:      t.Loved,
			ImageSmall: t.ImageSmall,
			ImageLarge: t.ImageLarge,
			DateUTS:    t.DateUTS,
			DateText:   t.DateText,
		}
	}

	for start := 0; start < len(scrobbles); start += s.batch() {
		end := start + s.batch()
		if end > len(scrobbles) {
			end = len(scrobbles)
		}
		chunk := scrobbles[start:end]
		if err := s.store.InsertBatch(ctx, chunk); err != nil {
			stats.Failed += len(chunk)
			logger.CtxError(ctx, "scrobble batch insert failed (%d rows): %v", len(chunk), err)
			continue
		}
		stats.Inserted += len(chunk)
	}
	return stats, nil
}

func (s *LastfmSyncer) batch() int {
	if s.batchSize <= 0 {
		return 500
	}
	return s.batchSize
}
