package repository

import (
	"context"

	"github.com/danny/worldly/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrichmentRepository handles TMDB film enrichment data operations.
type EnrichmentRepository struct {
	db *gorm.DB
}

// NewEnrichmentRepository creates a new EnrichmentRepository.
func NewEnrichmentRepository(db *gorm.DB) *EnrichmentRepository {
	return &EnrichmentRepository{db: db}
}

// ListKeys returns the (name, year) pair of every enriched film, letting an
// interrupted enrichment run resume where it stopped.
func (r *EnrichmentRepository) ListKeys(ctx context.Context) ([][2]string, error) {
	var rows []struct {
		Name string
		Year string
	}
	if err := r.db.WithContext(ctx).Model(&domain.FilmEnrichment{}).
		Select("name", "year").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	keys := make([][2]string, len(rows))
	for i, row := range rows {
		keys[i] = [2]string{row.Name, row.Year}
	}
	return keys, nil
}

// Upsert creates or refreshes an enrichment row keyed by (name, year).
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - enrichment: enrichment record to create or update.
//
// Returns:
//   - error: non-nil if the upsert fails.
func (r *EnrichmentRepository) Upsert(ctx context.Context, enrichment *domain.FilmEnrichment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tmdb_id", "runtime_minutes", "genres", "director", "overview",
			"poster_path", "backdrop_path", "release_date", "tagline",
			"vote_average", "vote_count", "production_countries",
			"spoken_languages", "updated_at",
		}),
	}).Create(enrichment).Error
}

// GetByTitle retrieves an enrichment row by its (name, year) key.
func (r *EnrichmentRepository) GetByTitle(ctx context.Context, name, year string) (*domain.FilmEnrichment, error) {
	var enrichment domain.FilmEnrichment
	if err := r.db.WithContext(ctx).
		First(&enrichment, "name = ? AND year = ?", name, year).Error; err != nil {
		return nil, err
	}
	return &enrichment, nil
}

// List retrieves enrichment rows with pagination.
func (r *EnrichmentRepository) List(ctx context.Context, limit, offset int) ([]domain.FilmEnrichment, error) {
	var rows []domain.FilmEnrichment
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the total number of enrichment rows.
func (r *EnrichmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.FilmEnrichment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
