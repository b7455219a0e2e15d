package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/reconcile"
)

type fakeSyncer struct {
	name  string
	stats *reconcile.Stats
	err   error
	runs  int
}

func (f *fakeSyncer) Source() string { return f.name }

func (f *fakeSyncer) Sync(ctx context.Context) (*reconcile.Stats, error) {
	f.runs++
	return f.stats, f.err
}

type fakeRunStore struct {
	runs      []*domain.SyncRun
	createErr error
}

func (f *fakeRunStore) Create(ctx context.Context, run *domain.SyncRun) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.runs = append(f.runs, run)
	return nil
}

func okStats(source string, inserted int) *reconcile.Stats {
	now := time.Now()
	return &reconcile.Stats{
		Source:     source,
		Fetched:    inserted,
		Inserted:   inserted,
		StartedAt:  now,
		FinishedAt: now,
	}
}

func TestRunnerPersistsOneRunPerSource(t *testing.T) {
	store := &fakeRunStore{}
	runner := NewRunner(store,
		&fakeSyncer{name: "lastfm", stats: okStats("lastfm", 3)},
		&fakeSyncer{name: "trakt", stats: okStats("trakt", 1)},
	)

	if err := runner.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(store.runs) != 2 {
		t.Fatalf("persisted %d runs, want 2", len(store.runs))
	}
	if store.runs[0].Source != "lastfm" || store.runs[1].Source != "trakt" {
		t.Errorf("run sources = %s, %s; want lastfm, trakt", store.runs[0].Source, store.runs[1].Source)
	}
	if store.runs[0].Status != domain.SyncStatusCompleted {
		t.Errorf("status = %s, want completed", store.runs[0].Status)
	}
	if store.runs[0].Inserted != 3 {
		t.Errorf("Inserted = %d, want 3", store.runs[0].Inserted)
	}
}

func TestRunnerOneFailureDoesNotStopTheRest(t *testing.T) {
	store := &fakeRunStore{}
	broken := &fakeSyncer{name: "strava", err: errors.New("auth failed")}
	healthy := &fakeSyncer{name: "trakt", stats: okStats("trakt", 1)}
	runner := NewRunner(store, broken, healthy)

	err := runner.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("Run() error = nil, want aggregate failure")
	}
	if healthy.runs != 1 {
		t.Errorf("healthy syncer ran %d times, want 1", healthy.runs)
	}
	if len(store.runs) != 2 {
		t.Fatalf("persisted %d runs, want 2", len(store.runs))
	}
	if store.runs[0].Status != domain.SyncStatusFailed {
		t.Errorf("failed source status = %s, want failed", store.runs[0].Status)
	}
	if store.runs[0].ErrorLog == "" {
		t.Error("failed run has empty ErrorLog")
	}
}

func TestRunnerSelectsNamedSources(t *testing.T) {
	lastfm := &fakeSyncer{name: "lastfm", stats: okStats("lastfm", 0)}
	trakt := &fakeSyncer{name: "trakt", stats: okStats("trakt", 0)}
	runner := NewRunner(&fakeRunStore{}, lastfm, trakt)

	if err := runner.Run(context.Background(), []string{"Trakt"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if lastfm.runs != 0 {
		t.Errorf("lastfm ran %d times, want 0", lastfm.runs)
	}
	if trakt.runs != 1 {
		t.Errorf("trakt ran %d times, want 1", trakt.runs)
	}
}

func TestRunnerRejectsUnknownSource(t *testing.T) {
	runner := NewRunner(&fakeRunStore{}, &fakeSyncer{name: "lastfm", stats: okStats("lastfm", 0)})
	if err := runner.Run(context.Background(), []string{"netflix"}); err == nil {
		t.Fatal("Run() error = nil, want unknown source failure")
	}
}

func TestRunnerRecordsPartialFetchInErrorLog(t *testing.T) {
	stats := okStats("lastfm", 2)
	stats.FetchErr = errors.New("rate limited on page 3")
	store := &fakeRunStore{}
	runner := NewRunner(store, &fakeSyncer{name: "lastfm", stats: stats})

	if err := runner.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error = %v, partial fetch must not fail the run", err)
	}
	run := store.runs[0]
	if run.Status != domain.SyncStatusCompleted {
		t.Errorf("status = %s, want completed despite fetch error", run.Status)
	}
	if run.ErrorLog == "" {
		t.Error("ErrorLog empty, want the fetch error recorded")
	}
}
