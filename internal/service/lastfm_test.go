package service

import (
	"context"
	"errors"
	"testing"

	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/source/lastfm"
)

type fakeLastfm struct {
	pages   [][]lastfm.Track
	pageErr error
	calls   int
}

func (f *fakeLastfm) RecentTracks(ctx context.Context, page, limit int) ([]lastfm.Track, error) {
	f.calls++
	if page > len(f.pages) {
		if f.pageErr != nil {
			return nil, f.pageErr
		}
		return nil, nil
	}
	return f.pages[page-1], nil
}

type fakeScrobbleStore struct {
	max       int64
	maxErr    error
	inserted  []domain.Scrobble
	insertErr error
}

func (f *fakeScrobbleStore) MaxCursor(ctx context.Context) (int64, error) {
	return f.max, f.maxErr
}

func (f *fakeScrobbleStore) InsertBatch(ctx context.Context, scrobbles []domain.Scrobble) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, scrobbles...)
	return nil
}

func listen(cursor int64) lastfm.Track {
	return lastfm.Track{ArtistName: "artist", TrackName: "track", DateUTS: cursor}
}

func TestLastfmSyncerStopsAtWatermark(t *testing.T) {
	client := &fakeLastfm{pages: [][]lastfm.Track{
		{listen(1050), listen(1020), listen(1000), listen(990)},
	}}
	store := &fakeScrobbleStore{max: 1000}

	syncer := NewLastfmSyncer(client, store, nil, 4, 0, 500)
	stats, err := syncer.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if client.calls != 1 {
		t.Errorf("pages fetched = %d, want 1", client.calls)
	}
	if stats.Fetched != 4 {
		t.Errorf("Fetched = %d, want 4", stats.Fetched)
	}
	if stats.Inserted != 2 {
		t.Errorf("Inserted = %d, want 2", stats.Inserted)
	}
	if stats.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", stats.Skipped)
	}
	if len(store.inserted) != 2 {
		t.Fatalf("stored %d scrobbles, want 2", len(store.inserted))
	}
	if store.inserted[0].DateUTS != 1050 || store.inserted[1].DateUTS != 1020 {
		t.Errorf("stored cursors = %d, %d; want 1050, 1020",
			store.inserted[0].DateUTS, store.inserted[1].DateUTS)
	}
}

func TestLastfmSyncerSecondRunInsertsNothing(t *testing.T) {
	client := &fakeLastfm{pages: [][]lastfm.Track{
		{listen(1050), listen(1020)},
	}}
	store := &fakeScrobbleStore{max: 1050}

	syncer := NewLastfmSyncer(client, store, nil, 2, 0, 500)
	stats, err := syncer.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if stats.Inserted != 0 {
		t.Errorf("Inserted = %d, want 0", stats.Inserted)
	}
	if len(store.inserted) != 0 {
		t.Errorf("stored %d scrobbles, want 0", len(store.inserted))
	}
}

func TestLastfmSyncerEmptySinkFetchesEverything(t *testing.T) {
	client := &fakeLastfm{pages: [][]lastfm.Track{
		{listen(300), listen(200)},
		{listen(100)},
	}}
	store := &fakeScrobbleStore{max: 0}

	syncer := NewLastfmSyncer(client, store, nil, 2, 0, 500)
	stats, err := syncer.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if stats.Inserted != 3 {
		t.Errorf("Inserted = %d, want 3", stats.Inserted)
	}
}

func TestLastfmSyncerWatermarkErrorDegradesToFullFetch(t *testing.T) {
	client := &fakeLastfm{pages: [][]lastfm.Track{
		{listen(300)},
	}}
	store := &fakeScrobbleStore{maxErr: errors.New("sink down")}

	syncer := NewLastfmSyncer(client, store, nil, 2, 0, 500)
	stats, err := syncer.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if stats.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", stats.Inserted)
	}
}

func TestLastfmSyncerSkipsNowPlaying(t *testing.T) {
	nowPlaying := lastfm.Track{ArtistName: "artist", TrackName: "live", NowPlaying: true}
	client := &fakeLastfm{pages: [][]lastfm.Track{
		{nowPlaying, listen(1050)},
	}}
	store := &fakeScrobbleStore{max: 0}

	syncer := NewLastfmSyncer(client, store, nil, 2, 0, 500)
	stats, err := syncer.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if stats.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", stats.Inserted)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
}

func TestLastfmSyncerKeepsPartialResultOnFetchError(t *testing.T) {
	client := &fakeLastfm{
		pages:   [][]lastfm.Track{{listen(300), listen(200)}},
		pageErr: errors.New("rate limited"),
	}
	store := &fakeScrobbleStore{max: 0}

	syncer := NewLastfmSyncer(client, store, nil, 2, 0, 500)
	stats, err := syncer.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if stats.FetchErr == nil {
		t.Error("FetchErr = nil, want rate limit error recorded")
	}
	if stats.Inserted != 2 {
		t.Errorf("Inserted = %d, want 2 from the page before the failure", stats.Inserted)
	}
}
