package repository

import (
	"context"

	"github.com/danny/worldly/internal/domain"
	"gorm.io/gorm"
)

// SyncRunRepository persists the report emitted at the end of each sync run.
type SyncRunRepository struct {
	db *gorm.DB
}

// NewSyncRunRepository creates a new SyncRunRepository.
func NewSyncRunRepository(db *gorm.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Create inserts a sync run record.
func (r *SyncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// List retrieves sync runs newest-first, optionally filtered by source.
func (r *SyncRunRepository) List(ctx context.Context, source string, limit, offset int) ([]domain.SyncRun, error) {
	var runs []domain.SyncRun
	query := r.db.WithContext(ctx)
	if source != "" {
		query = query.Where("source = ?", source)
	}
	if err := query.
		Order("started_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
