package repository

import (
	"context"

	"github.com/danny/worldly/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchRepository handles Trakt watch history data operations.
type WatchRepository struct {
	db *gorm.DB
}

// NewWatchRepository creates a new WatchRepository.
func NewWatchRepository(db *gorm.DB) *WatchRepository {
	return &WatchRepository{db: db}
}

// Upsert creates or replaces a watch event keyed by its Trakt history id.
func (r *WatchRepository) Upsert(ctx context.Context, event *domain.WatchEvent) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "trakt_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"watched_at", "action", "type", "title", "year", "show_title",
			"season", "episode", "imdb_id", "tmdb_id", "updated_at",
		}),
	}).Create(event).Error
}

// ExistsByTraktID checks if a watch event with the given Trakt id exists.
func (r *WatchRepository) ExistsByTraktID(ctx context.Context, traktID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.WatchEvent{}).
		Where("trakt_id = ?", traktID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List retrieves watch events newest-first with pagination and an optional
// type filter ("movie" or "episode").
func (r *WatchRepository) List(ctx context.Context, eventType string, limit, offset int) ([]domain.WatchEvent, error) {
	var events []domain.WatchEvent
	query := r.db.WithContext(ctx)
	if eventType != "" {
		query = query.Where("type = ?", eventType)
	}
	if err := query.
		Order("watched_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns the total number of watch events.
func (r *WatchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.WatchEvent{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
