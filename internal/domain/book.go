package domain

import "time"

// Book represents one Goodreads library entry. Goodreads exports carry no
// stable id, so (Title, Author) is the natural key; collisions are skipped,
// never replaced.
type Book struct {
	ID        string     `gorm:"type:text;primaryKey" json:"id"`
	Title     string     `gorm:"type:text;not null;uniqueIndex:idx_books_title_author" json:"title"`
	Author    string     `gorm:"type:text;not null;uniqueIndex:idx_books_title_author" json:"author"`
	Rating    *float64   `json:"rating,omitempty"`
	DateRead  *time.Time `json:"date_read,omitempty"`
	DateAdded *time.Time `json:"date_added,omitempty"`
	ISBN      string     `gorm:"type:text" json:"isbn,omitempty"`
	Pages     *int       `json:"pages,omitempty"`
	Format    string     `gorm:"type:text" json:"format,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the database table name for Book.
func (Book) TableName() string {
	return "goodreads_books"
}
