package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/danny/worldly/internal/domain"
)

// testDB opens a throwaway sqlite database with the sink schema migrated.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Activity{},
		&domain.WatchEvent{},
		&domain.FilmEnrichment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestActivityUpsertReplacesRowByStravaID(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(testDB(t))

	first := &domain.Activity{
		ID:         "row-1",
		StravaID:   42,
		Name:       "Morning Ride",
		SportType:  "Ride",
		StartDate:  time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC),
		KudosCount: 3,
		Raw:        domain.RawJSON(`{"id":42}`),
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}

	// Same external id, fresh row id, edited fields.
	second := &domain.Activity{
		ID:         "row-2",
		StravaID:   42,
		Name:       "Morning Ride (renamed)",
		SportType:  "Ride",
		StartDate:  time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC),
		KudosCount: 5,
		Raw:        domain.RawJSON(`{"id":42}`),
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want exactly 1 row for strava id 42", count)
	}

	rows, err := repo.List(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got := rows[0]
	if got.ID != "row-1" {
		t.Errorf("row id = %q, want the original %q to survive the replace", got.ID, "row-1")
	}
	if got.Name != "Morning Ride (renamed)" || got.KudosCount != 5 {
		t.Errorf("row = %q/%d kudos, want the latest payload", got.Name, got.KudosCount)
	}
}

func TestActivityUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(testDB(t))

	for i := 0; i < 3; i++ {
		row := &domain.Activity{
			ID:        "row-1",
			StravaID:  7,
			Name:      "Evening Run",
			SportType: "Run",
			StartDate: time.Date(2024, 6, 2, 19, 0, 0, 0, time.UTC),
		}
		if i > 0 {
			row.ID = "row-again"
		}
		if err := repo.Upsert(ctx, row); err != nil {
			t.Fatalf("Upsert() #%d error = %v", i+1, err)
		}
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d after repeated identical upserts, want 1", count)
	}
}

func TestWatchUpsertReplacesRowByTraktID(t *testing.T) {
	ctx := context.Background()
	repo := NewWatchRepository(testDB(t))

	if err := repo.Upsert(ctx, &domain.WatchEvent{
		ID:        "row-1",
		TraktID:   42,
		WatchedAt: time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC),
		Action:    "watch",
		Type:      "movie",
		Title:     "Dune",
		Year:      2021,
	}); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}
	if err := repo.Upsert(ctx, &domain.WatchEvent{
		ID:        "row-2",
		TraktID:   42,
		WatchedAt: time.Date(2024, 6, 1, 20, 30, 0, 0, time.UTC),
		Action:    "watch",
		Type:      "movie",
		Title:     "Dune: Part One",
		Year:      2021,
	}); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want exactly 1 row for trakt id 42", count)
	}

	exists, err := repo.ExistsByTraktID(ctx, 42)
	if err != nil || !exists {
		t.Fatalf("ExistsByTraktID(42) = %v, %v, want true", exists, err)
	}

	rows, err := repo.List(ctx, "movie", 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got := rows[0]
	if got.ID != "row-1" {
		t.Errorf("row id = %q, want the original %q to survive the replace", got.ID, "row-1")
	}
	if got.Title != "Dune: Part One" {
		t.Errorf("title = %q, want the latest payload", got.Title)
	}
}

func TestEnrichmentUpsertKeyedByNameAndYear(t *testing.T) {
	ctx := context.Background()
	repo := NewEnrichmentRepository(testDB(t))

	if err := repo.Upsert(ctx, &domain.FilmEnrichment{
		ID:       "row-1",
		Name:     "Stalker",
		Year:     "1979",
		TMDBID:   1398,
		Director: "A. Tarkovsky",
		Genres:   domain.StringArray{"Drama"},
	}); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}
	if err := repo.Upsert(ctx, &domain.FilmEnrichment{
		ID:       "row-2",
		Name:     "Stalker",
		Year:     "1979",
		TMDBID:   1398,
		Director: "Andrei Tarkovsky",
		Genres:   domain.StringArray{"Drama", "Science Fiction"},
	}); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want exactly 1 row per (name, year)", count)
	}

	got, err := repo.GetByTitle(ctx, "Stalker", "1979")
	if err != nil {
		t.Fatalf("GetByTitle() error = %v", err)
	}
	if got.ID != "row-1" {
		t.Errorf("row id = %q, want the original %q to survive the refresh", got.ID, "row-1")
	}
	if got.Director != "Andrei Tarkovsky" || len(got.Genres) != 2 {
		t.Errorf("row = %q/%v, want the refreshed metadata", got.Director, got.Genres)
	}

	keys, err := repo.ListKeys(ctx)
	if err != nil {
		t.Fatalf("ListKeys() error = %v", err)
	}
	if len(keys) != 1 || keys[0] != [2]string{"Stalker", "1979"} {
		t.Errorf("keys = %v, want the single (Stalker, 1979) pair", keys)
	}
}
