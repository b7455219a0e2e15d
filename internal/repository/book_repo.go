package repository

import (
	"context"

	"github.com/danny/worldly/internal/domain"
	"gorm.io/gorm"
)

// BookRepository handles Goodreads book data operations.
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// ListKeys returns the (title, author) pair of every stored book. The sync
// loader seeds its dedup set from this.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//
// Returns:
//   - [][2]string: title/author pairs.
//   - error: non-nil if the query fails.
func (r *BookRepository) ListKeys(ctx context.Context) ([][2]string, error) {
	var rows []struct {
		Title  string
		Author string
	}
	if err := r.db.WithContext(ctx).Model(&domain.Book{}).
		Select("title", "author").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	keys := make([][2]string, len(rows))
	for i, row := range rows {
		keys[i] = [2]string{row.Title, row.Author}
	}
	return keys, nil
}

// InsertBatch inserts a batch of books.
func (r *BookRepository) InsertBatch(ctx context.Context, books []domain.Book) error {
	if len(books) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&books).Error
}

// List retrieves books with pagination, most recently read first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records to return.
//   - offset: number of records to skip.
//
// Returns:
//   - []domain.Book: matching records.
//   - error: non-nil if the query fails.
func (r *BookRepository) List(ctx context.Context, limit, offset int) ([]domain.Book, error) {
	var books []domain.Book
	if err := r.db.WithContext(ctx).
		Order("date_read DESC NULLS LAST").
		Limit(limit).
		Offset(offset).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Count returns the total number of books.
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Book{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
