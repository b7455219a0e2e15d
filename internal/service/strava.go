package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danny/worldly/internal/archive"
	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/logger"
	"github.com/danny/worldly/internal/reconcile"
	"github.com/danny/worldly/internal/source/strava"
)

// stravaAPI is the slice of the Strava client the syncer uses.
type stravaAPI interface {
	Authenticate(ctx context.Context) error
	Activities(ctx context.Context, page, perPage int) ([]strava.Activity, error)
	RotatedToken() string
}

// activityStore is the slice of the activity repository the syncer uses.
type activityStore interface {
	Upsert(ctx context.Context, activity *domain.Activity) error
	ExistsByStravaID(ctx context.Context, stravaID int64) (bool, error)
}

// StravaSyncer syncs Strava activities. Strava has no reliable ordering
// guarantee across edits, so every run walks all pages and upserts by the
// stable strava_id; edits made upstream replace the stored row.
type StravaSyncer struct {
	client  stravaAPI
	store   activityStore
	archive archive.Store
	perPage int
	delay   time.Duration
}

// NewStravaSyncer creates a Strava syncer.
func NewStravaSyncer(client stravaAPI, store activityStore, arc archive.Store, perPage int, delay time.Duration) *StravaSyncer {
	return &StravaSyncer{
		client:  client,
		store:   store,
		archive: arc,
		perPage: perPage,
		delay:   delay,
	}
}

// Source returns "strava".
func (s *StravaSyncer) Source() string { return "strava" }

// Sync authenticates, walks every activity page, and upserts each record.
// Authentication failure aborts before any fetch; a single bad record is
// skipped and counted, never fatal.
func (s *StravaSyncer) Sync(ctx context.Context) (*reconcile.Stats, error) {
	stats := &reconcile.Stats{Source: s.Source(), StartedAt: time.Now()}
	defer func() { stats.FinishedAt = time.Now() }()

	if err := s.client.Authenticate(ctx); err != nil {
		return stats, fmt.Errorf("strava authentication failed: %w", err)
	}
	if rotated := s.client.RotatedToken(); rotated != "" {
		logger.CtxWarn(ctx, "strava rotated the refresh token; update STRAVA_REFRESH_TOKEN to %s", rotated)
	}

	fetcher := &reconcile.Fetcher[strava.Activity]{
		Fetch: func(ctx context.Context, page int) ([]strava.Activity, error) {
			return s.client.Activities(ctx, page, s.perPage)
		},
		Delay:    s.delay,
		PageSize: s.perPage,
	}
	activities, fetchErr := fetcher.Run(ctx, reconcile.KeepAll[strava.Activity])
	stats.Fetched = len(activities)
	stats.FetchErr = fetchErr

	snapshot(ctx, s.archive, s.Source(), stats.StartedAt, activities)

	for _, a := range activities {
		exists, err := s.store.ExistsByStravaID(ctx, a.ID)
		if err != nil {
			stats.Failed++
			logger.CtxError(ctx, "activity %d lookup failed: %v", a.ID, err)
			continue
		}
		row := activityRow(a)
		if err := s.store.Upsert(ctx, row); err != nil {
			stats.Failed++
			logger.CtxError(ctx, "activity %d upsert failed: %v", a.ID, err)
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

// activityRow maps one API activity onto the sink schema.
func activityRow(a strava.Activity) *domain.Activity {
	return &domain.Activity{
		ID:                 uuid.NewString(),
		StravaID:           a.ID,
		AthleteID:          a.Athlete.ID,
		Name:               a.Name,
		Type:               a.Type,
		SportType:          a.SportType,
		StartDate:          a.StartDate,
		StartDateLocal:     a.StartDateLocal,
		Timezone:           a.Timezone,
		Distance:           a.Distance,
		MovingTime:         a.MovingTime,
		ElapsedTime:        a.ElapsedTime,
		TotalElevationGain: a.TotalElevationGain,
		AverageSpeed:       a.AverageSpeed,
		MaxSpeed:           a.MaxSpeed,
		AverageWatts:       a.AverageWatts,
		AverageHeartrate:   a.AverageHeartrate,
		MaxHeartrate:       a.MaxHeartrate,
		SufferScore:        a.SufferScore,
		KudosCount:         a.KudosCount,
		AchievementCount:   a.AchievementCount,
		PRCount:            a.PRCount,
		Trainer:            a.Trainer,
		Commute:            a.Commute,
		Manual:             a.Manual,
		Private:            a.Private,
		GearID:             a.GearID,
		DeviceName:         a.DeviceName,
		StartLatLng:        strava.LatLngString(a.StartLatLng),
		EndLatLng:          strava.LatLngString(a.EndLatLng),
		Raw:                domain.RawJSON(a.Raw),
	}
}
