// Package service orchestrates the per-source sync pipelines. Each syncer
// walks the same phases: read the sink state, fetch from the source, filter
// out what the sink already holds, write the remainder, and report.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danny/worldly/internal/archive"
	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/logger"
	"github.com/danny/worldly/internal/reconcile"
)

// Syncer runs one source's sync pipeline end to end.
type Syncer interface {
	// Source returns the source identifier used in reports and logs.
	Source() string

	// Sync runs the pipeline. The returned stats are always non-nil; the
	// error is non-nil only when the source could not start at all
	// (missing credentials, failed authentication, missing export file).
	// Fetch failures mid-run degrade to a partial result recorded in
	// stats.FetchErr instead.
	Sync(ctx context.Context) (*reconcile.Stats, error)
}

// snapshot stores the fetched raw records in the archive under
// raw/<source>/<ts>.json. Archive failures are logged, never fatal: the
// snapshot is a debugging aid, not part of the sink.
func snapshot(ctx context.Context, store archive.Store, source string, ts time.Time, records any) {
	if store == nil {
		return
	}
	body, err := json.Marshal(records)
	if err != nil {
		logger.CtxWarn(ctx, "archive snapshot marshal failed for %s: %v", source, err)
		return
	}
	key := archive.SnapshotKey(source, ts)
	if err := store.Put(ctx, key, body, "application/json"); err != nil {
		logger.CtxWarn(ctx, "archive snapshot upload failed for %s: %v", source, err)
		return
	}
	logger.CtxInfo(ctx, "archived raw payload to %s", key)
}

// syncRunStore persists finished run reports.
type syncRunStore interface {
	Create(ctx context.Context, run *domain.SyncRun) error
}

// Runner executes a set of syncers in order and persists one SyncRun row
// per execution. One source failing does not stop the others.
type Runner struct {
	syncers []Syncer
	runs    syncRunStore
}

// NewRunner creates a Runner over the given syncers.
func NewRunner(runs syncRunStore, syncers ...Syncer) *Runner {
	return &Runner{syncers: syncers, runs: runs}
}

// Sources returns the identifiers of the registered syncers in run order.
func (r *Runner) Sources() []string {
	names := make([]string, len(r.syncers))
	for i, s := range r.syncers {
		names[i] = s.Source()
	}
	return names
}

// Run executes the named sources, or every registered syncer when sources
// is empty. It returns an error when any source failed to start or named
// sources do not exist; successful partial results are not errors.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sources: source identifiers to run; empty means all.
//
// Returns:
//   - error: non-nil when at least one selected source failed.
func (r *Runner) Run(ctx context.Context, sources []string) error {
	selected, err := r.selectSyncers(sources)
	if err != nil {
		return err
	}

	var failed []string
	for _, s := range selected {
		runCtx := logger.WithFields(ctx, logger.Fields{
			logger.FieldRunID:  uuid.NewString(),
			logger.FieldSource: s.Source(),
		})
		if err := r.runOne(runCtx, s); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", s.Source(), err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("sync failed for %d source(s): %s", len(failed), strings.Join(failed, "; "))
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, s Syncer) error {
	logger.CtxInfo(ctx, "sync started")
	stats, err := s.Sync(ctx)
	if stats == nil {
		stats = &reconcile.Stats{Source: s.Source()}
	}
	if stats.FinishedAt.IsZero() {
		stats.FinishedAt = time.Now()
	}

	run := runRecord(stats, err)
	if r.runs != nil {
		if createErr := r.runs.Create(ctx, run); createErr != nil {
			logger.CtxWarn(ctx, "could not persist sync run: %v", createErr)
		}
	}

	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldStatus:     string(run.Status),
		logger.FieldDurationMs: stats.FinishedAt.Sub(stats.StartedAt).Milliseconds(),
	})
	if err != nil {
		logger.CtxError(ctx, "sync failed: %v", err)
		return err
	}
	logger.CtxInfo(ctx, "sync finished: fetched=%d inserted=%d updated=%d skipped=%d failed=%d",
		stats.Fetched, stats.Inserted, stats.Updated, stats.Skipped, stats.Failed)
	return nil
}

// runRecord converts run stats into the persisted report row.
func runRecord(stats *reconcile.Stats, err error) *domain.SyncRun {
	run := &domain.SyncRun{
		ID:         uuid.NewString(),
		Source:     stats.Source,
		Status:     domain.SyncStatusCompleted,
		Fetched:    stats.Fetched,
		Inserted:   stats.Inserted,
		Updated:    stats.Updated,
		Skipped:    stats.Skipped,
		Failed:     stats.Failed,
		StartedAt:  stats.StartedAt,
		FinishedAt: stats.FinishedAt,
	}
	switch {
	case err != nil:
		run.Status = domain.SyncStatusFailed
		run.ErrorLog = err.Error()
	case stats.FetchErr != nil:
		run.ErrorLog = stats.FetchErr.Error()
	}
	return run
}

func (r *Runner) selectSyncers(sources []string) ([]Syncer, error) {
	if len(sources) == 0 {
		return r.syncers, nil
	}
	byName := make(map[string]Syncer, len(r.syncers))
	for _, s := range r.syncers {
		byName[s.Source()] = s
	}
	selected := make([]Syncer, 0, len(sources))
	for _, name := range sources {
		s, ok := byName[strings.TrimSpace(strings.ToLower(name))]
		if !ok {
			return nil, fmt.Errorf("unknown source %q (available: %s)", name, strings.Join(r.Sources(), ", "))
		}
		selected = append(selected, s)
	}
	return selected, nil
}
