package repository

import (
	"context"

	"github.com/danny/worldly/internal/domain"
	"gorm.io/gorm"
)

// FilmRepository handles Letterboxd film data operations.
type FilmRepository struct {
	db *gorm.DB
}

// NewFilmRepository creates a new FilmRepository.
func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// ListKeys returns the (name, year) pair of every film on the given shelf.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - shelf: shelf to inspect.
//
// Returns:
//   - [][2]string: name/year pairs.
//   - error: non-nil if the query fails.
func (r *FilmRepository) ListKeys(ctx context.Context, shelf domain.FilmShelf) ([][2]string, error) {
	var rows []struct {
		Name string
		Year string
	}
	if err := r.db.WithContext(ctx).Model(&domain.Film{}).
		Select("name", "year").
		Where("shelf = ?", shelf).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	keys := make([][2]string, len(rows))
	for i, row := range rows {
		keys[i] = [2]string{row.Name, row.Year}
	}
	return keys, nil
}

// DistinctTitles returns every distinct (name, year) pair across all
// shelves. The TMDB enricher walks this list.
func (r *FilmRepository) DistinctTitles(ctx context.Context) ([][2]string, error) {
	var rows []struct {
		Name string
		Year string
	}
	if err := r.db.WithContext(ctx).Model(&domain.Film{}).
		Distinct("name", "year").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	titles := make([][2]string, len(rows))
	for i, row := range rows {
		titles[i] = [2]string{row.Name, row.Year}
	}
	return titles, nil
}

// InsertBatch inserts a batch of films.
func (r *FilmRepository) InsertBatch(ctx context.Context, films []domain.Film) error {
	if len(films) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&films).Error
}

// List retrieves films with pagination and an optional shelf filter.
func (r *FilmRepository) List(ctx context.Context, shelf domain.FilmShelf, limit, offset int) ([]domain.Film, error) {
	var films []domain.Film
	query := r.db.WithContext(ctx)
	if shelf != "" {
		query = query.Where("shelf = ?", shelf)
	}
	if err := query.
		Order("watched_on DESC NULLS LAST").
		Limit(limit).
		Offset(offset).
		Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

// Count returns the number of films on a shelf, or all films when shelf is
// empty.
func (r *FilmRepository) Count(ctx context.Context, shelf domain.FilmShelf) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Film{})
	if shelf != "" {
		query = query.Where("shelf = ?", shelf)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
