package service

import (
	"context"
	"testing"

	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/source/tmdb"
)

type fakeTMDB struct {
	ids      map[string]int64
	details  map[int64]*tmdb.Details
	searches int
}

func (f *fakeTMDB) SearchMovie(ctx context.Context, name, year string) (int64, error) {
	f.searches++
	return f.ids[name], nil
}

func (f *fakeTMDB) MovieDetails(ctx context.Context, tmdbID int64) (*tmdb.Details, error) {
	return f.details[tmdbID], nil
}

type fakeFilmTitles struct {
	titles [][2]string
}

func (f *fakeFilmTitles) DistinctTitles(ctx context.Context) ([][2]string, error) {
	return f.titles, nil
}

type fakeEnrichmentStore struct {
	keys    [][2]string
	upserts []*domain.FilmEnrichment
}

func (f *fakeEnrichmentStore) ListKeys(ctx context.Context) ([][2]string, error) {
	return f.keys, nil
}

func (f *fakeEnrichmentStore) Upsert(ctx context.Context, enrichment *domain.FilmEnrichment) error {
	f.upserts = append(f.upserts, enrichment)
	return nil
}

func TestFilmEnricherResumesWherePreviousRunStopped(t *testing.T) {
	client := &fakeTMDB{
		ids: map[string]int64{"Dune": 100, "Stalker": 200},
		details: map[int64]*tmdb.Details{
			100: {TMDBID: 100, RuntimeMinutes: 155, Director: "Denis Villeneuve"},
			200: {TMDBID: 200, RuntimeMinutes: 162, Director: "Andrei Tarkovsky"},
		},
	}
	films := &fakeFilmTitles{titles: [][2]string{{"Dune", "2021"}, {"Stalker", "1979"}}}
	store := &fakeEnrichmentStore{keys: [][2]string{{"Dune", "2021"}}}

	enricher := NewFilmEnricher(client, films, store, 0)
	stats, err := enricher.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if client.searches != 1 {
		t.Errorf("tmdb searches = %d, want 1 (Dune already enriched)", client.searches)
	}
	if stats.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", stats.Inserted)
	}
	if len(store.upserts) != 1 || store.upserts[0].Name != "Stalker" {
		t.Fatalf("upserts = %+v, want only Stalker", store.upserts)
	}
	if store.upserts[0].Director != "Andrei Tarkovsky" {
		t.Errorf("Director = %q, want Andrei Tarkovsky", store.upserts[0].Director)
	}
}

func TestFilmEnricherSkipsTitlesWithoutMatch(t *testing.T) {
	client := &fakeTMDB{ids: map[string]int64{}}
	films := &fakeFilmTitles{titles: [][2]string{{"Home Movie 2019", ""}}}
	store := &fakeEnrichmentStore{}

	enricher := NewFilmEnricher(client, films, store, 0)
	stats, err := enricher.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
	if stats.Failed != 0 {
		t.Errorf("Failed = %d, want 0 (no match is not a failure)", stats.Failed)
	}
	if len(store.upserts) != 0 {
		t.Errorf("upserts = %d, want 0", len(store.upserts))
	}
}

func TestFilmEnricherDeduplicatesTitlesWithinRun(t *testing.T) {
	client := &fakeTMDB{
		ids:     map[string]int64{"Dune": 100},
		details: map[int64]*tmdb.Details{100: {TMDBID: 100}},
	}
	films := &fakeFilmTitles{titles: [][2]string{{"Dune", "2021"}, {"Dune", "2021"}}}
	store := &fakeEnrichmentStore{}

	enricher := NewFilmEnricher(client, films, store, 0)
	if _, err := enricher.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if client.searches != 1 {
		t.Errorf("tmdb searches = %d, want 1", client.searches)
	}
}
