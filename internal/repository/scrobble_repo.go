package repository

import (
	"context"

	"github.com/danny/worldly/internal/domain"
	"gorm.io/gorm"
)

// ScrobbleRepository handles Last.fm scrobble data operations.
type ScrobbleRepository struct {
	db *gorm.DB
}

// NewScrobbleRepository creates a new ScrobbleRepository.
// Parameters:
//   - db: GORM database handle used for queries.
//
// Returns:
//   - *ScrobbleRepository: repository instance bound to db.
func NewScrobbleRepository(db *gorm.DB) *ScrobbleRepository {
	return &ScrobbleRepository{db: db}
}

// MaxCursor returns the highest date_uts currently stored, or 0 for an
// empty table. This is the watermark bounding the next incremental fetch.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//
// Returns:
//   - int64: maximum date_uts value, 0 when none.
//   - error: non-nil if the query fails.
func (r *ScrobbleRepository) MaxCursor(ctx context.Context) (int64, error) {
	var row domain.Scrobble
	err := r.db.WithContext(ctx).
		Select("date_uts").
		Order("date_uts DESC").
		Limit(1).
		Take(&row).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.DateUTS, nil
}

// InsertBatch inserts a batch of scrobbles.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - scrobbles: records to persist.
//
// Returns:
//   - error: non-nil if the insert fails.
func (r *ScrobbleRepository) InsertBatch(ctx context.Context, scrobbles []domain.Scrobble) error {
	if len(scrobbles) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&scrobbles).Error
}

// List retrieves scrobbles newest-first with pagination and an optional
// time window on date_uts.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - from, to: inclusive date_uts bounds; 0 disables a bound.
//   - limit: maximum number of records to return.
//   - offset: number of records to skip.
//
// Returns:
//   - []domain.Scrobble: matching records.
//   - error: non-nil if the query fails.
func (r *ScrobbleRepository) List(ctx context.Context, from, to int64, limit, offset int) ([]domain.Scrobble, error) {
	var scrobbles []domain.Scrobble
	query := r.db.WithContext(ctx)
	if from > 0 {
		query = query.Where("date_uts >= ?", from)
	}
	if to > 0 {
		query = query.Where("date_uts <= ?", to)
	}
	if err := query.
		Order("date_uts DESC").
		Limit(limit).
		Offset(offset).
		Find(&scrobbles).Error; err != nil {
		return nil, err
	}
	return scrobbles, nil
}

// Count returns the total number of scrobbles.
func (r *ScrobbleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Scrobble{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
