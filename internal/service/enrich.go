package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/logger"
	"github.com/danny/worldly/internal/reconcile"
	"github.com/danny/worldly/internal/source/tmdb"
)

// tmdbAPI is the slice of the TMDB client the enricher uses.
type tmdbAPI interface {
	SearchMovie(ctx context.Context, name, year string) (int64, error)
	MovieDetails(ctx context.Context, tmdbID int64) (*tmdb.Details, error)
}

// filmTitleStore lists the titles awaiting enrichment.
type filmTitleStore interface {
	DistinctTitles(ctx context.Context) ([][2]string, error)
}

// enrichmentStore is the slice of the enrichment repository the enricher
// uses.
type enrichmentStore interface {
	ListKeys(ctx context.Context) ([][2]string, error)
	Upsert(ctx context.Context, enrichment *domain.FilmEnrichment) error
}

// FilmEnricher looks up TMDB metadata for every distinct film title that
// has no enrichment row yet. The run is resumable: already-enriched titles
// are skipped, so an interrupted pass continues where it stopped.
type FilmEnricher struct {
	tmdb  tmdbAPI
	films filmTitleStore
	store enrichmentStore
	delay time.Duration
}

// NewFilmEnricher creates a TMDB enricher.
func NewFilmEnricher(client tmdbAPI, films filmTitleStore, store enrichmentStore, delay time.Duration) *FilmEnricher {
	return &FilmEnricher{tmdb: client, films: films, store: store, delay: delay}
}

// Source returns "tmdb".
func (e *FilmEnricher) Source() string { return "tmdb" }

// Sync enriches every pending title. Titles TMDB does not know are counted
// as skipped, not failed; a transport error on one title does not stop the
// rest.
func (e *FilmEnricher) Sync(ctx context.Context) (*reconcile.Stats, error) {
	stats := &reconcile.Stats{Source: e.Source(), StartedAt: time.Now()}
	defer func() { stats.FinishedAt = time.Now() }()

	titles, err := e.films.DistinctTitles(ctx)
	if err != nil {
		return stats, err
	}

	done := reconcile.NewKeySet()
	keys, err := e.store.ListKeys(ctx)
	if err != nil {
		logger.CtxWarn(ctx, "could not read enriched keys, re-enriching everything: %v", err)
	}
	for _, k := range keys {
		done.Add(k[0], k[1])
	}

	pending := 0
	for _, title := range titles {
		if !done.Contains(title[0], title[1]) {
			pending++
		}
	}
	logger.CtxInfo(ctx, "%d of %d titles pending enrichment", pending, len(titles))

	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			stats.FetchErr = err
			return stats, nil
		}
		name, year := title[0], title[1]
		if !done.Add(name, year) {
			continue
		}
		stats.Fetched++

		if err := e.enrichOne(ctx, name, year, stats); err != nil {
			stats.Failed++
			logger.CtxWarn(ctx, "enrichment failed for %q (%s): %v", name, year, err)
		}

		if e.delay > 0 {
			select {
			case <-time.After(e.delay):
			case <-ctx.Done():
				stats.FetchErr = ctx.Err()
				return stats, nil
			}
		}
	}
	return stats, nil
}

func (e *FilmEnricher) enrichOne(ctx context.Context, name, year string, stats *reconcile.Stats) error {
	id, err := e.tmdb.SearchMovie(ctx, name, year)
	if err != nil {
		return err
	}
	if id == 0 {
		stats.Skipped++
		logger.FromContext(ctx).Debugf("no tmdb match for %q (%s)", name, year)
		return nil
	}
	details, err := e.tmdb.MovieDetails(ctx, id)
	if err != nil {
		return err
	}
	if details == nil {
		stats.Skipped++
		return nil
	}

	row := &domain.FilmEnrichment{
		ID:                  uuid.NewString(),
		Name:                name,
		Year:                year,
		TMDBID:              details.TMDBID,
		RuntimeMinutes:      details.RuntimeMinutes,
		Genres:              domain.StringArray(details.Genres),
		Director:            details.Director,
		Overview:            details.Overview,
		PosterPath:          details.PosterPath,
		BackdropPath:        details.BackdropPath,
		ReleaseDate:         details.ReleaseDate,
		Tagline:             details.Tagline,
		VoteAverage:         details.VoteAverage,
		VoteCount:           details.VoteCount,
		ProductionCountries: domain.StringArray(details.ProductionCountries),
		SpokenLanguages:     details.SpokenLanguages,
	}
	if err := e.store.Upsert(ctx, row); err != nil {
		return err
	}
	stats.Inserted++
	return nil
}
