package repository

import (
	"context"

	"github.com/danny/worldly/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityRepository handles Strava activity data operations.
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Upsert creates or replaces an activity keyed by its Strava id. Edits made
// on Strava overwrite the stored row; the external id is authoritative.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - activity: activity record to create or update.
//
// Returns:
//   - error: non-nil if the upsert fails.
func (r *ActivityRepository) Upsert(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "strava_id"}},
		DoUpdates: clause.AssignmentColumns(activityUpdateColumns),
	}).Create(activity).Error
}

// activityUpdateColumns lists the columns refreshed on conflict. The row's
// primary key and created_at survive a replace.
var activityUpdateColumns = []string{
	"athlete_id", "name", "type", "sport_type", "start_date",
	"start_date_local", "timezone", "distance", "moving_time",
	"elapsed_time", "total_elevation_gain", "average_speed", "max_speed",
	"average_watts", "average_heartrate", "max_heartrate", "suffer_score",
	"kudos_count", "achievement_count", "pr_count", "trainer", "commute",
	"manual", "private", "gear_id", "device_name", "start_lat_lng",
	"end_lat_lng", "raw", "updated_at",
}

// ExistsByStravaID checks if an activity with the given Strava id exists.
func (r *ActivityRepository) ExistsByStravaID(ctx context.Context, stravaID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Activity{}).
		Where("strava_id = ?", stravaID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List retrieves activities newest-first with pagination and an optional
// sport type filter.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sportType: sport type to filter by; empty means all.
//   - limit: maximum number of records to return.
//   - offset: number of records to skip.
//
// Returns:
//   - []domain.Activity: matching records.
//   - error: non-nil if the query fails.
func (r *ActivityRepository) List(ctx context.Context, sportType string, limit, offset int) ([]domain.Activity, error) {
	var activities []domain.Activity
	query := r.db.WithContext(ctx)
	if sportType != "" {
		query = query.Where("sport_type = ?", sportType)
	}
	if err := query.
		Order("start_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// Count returns the total number of activities.
func (r *ActivityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Activity{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
