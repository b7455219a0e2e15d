package domain

import "time"

// WatchEvent represents one Trakt history entry (a movie or an episode
// play). TraktID is the stable history event id; re-syncs replace the row.
type WatchEvent struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	TraktID   int64     `gorm:"not null;uniqueIndex:idx_watch_trakt_id" json:"trakt_id"`
	WatchedAt time.Time `gorm:"index:idx_watch_watched_at" json:"watched_at"`
	Action    string    `gorm:"type:text" json:"action,omitempty"`
	Type      string    `gorm:"type:text;index:idx_watch_type" json:"type"`
	Title     string    `gorm:"type:text" json:"title"`
	Year      int       `json:"year,omitempty"`
	ShowTitle string    `gorm:"type:text" json:"show_title,omitempty"`
	Season    int       `json:"season,omitempty"`
	Episode   int       `json:"episode,omitempty"`
	IMDBID    string    `gorm:"type:text" json:"imdb_id,omitempty"`
	TMDBID    int64     `json:"tmdb_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for WatchEvent.
func (WatchEvent) TableName() string {
	return "trakt_history"
}
