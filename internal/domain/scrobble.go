package domain

import "time"

// Scrobble represents one Last.fm listen. DateUTS is the ordering cursor
// used by the incremental sync watermark; listens arrive from the API in
// reverse-chronological order.
type Scrobble struct {
	ID         string `gorm:"type:text;primaryKey" json:"id"`
	ArtistName string `gorm:"type:text;not null;index:idx_scrobbles_artist" json:"artist_name"`
	ArtistURL  string `gorm:"type:text" json:"artist_url,omitempty"`
	ArtistMBID string `gorm:"type:text" json:"artist_mbid,omitempty"`
	TrackName  string `gorm:"type:text;not null" json:"track_name"`
	TrackURL   string `gorm:"type:text" json:"track_url,omitempty"`
	TrackMBID  string `gorm:"type:text" json:"track_mbid,omitempty"`
	AlbumName  string `gorm:"type:text" json:"album_name,omitempty"`
	AlbumMBID  string `gorm:"type:text" json:"album_mbid,omitempty"`
	Loved      bool   `json:"loved"`
	ImageSmall string `gorm:"type:text" json:"image_small,omitempty"`
	ImageLarge string `gorm:"type:text" json:"image_large,omitempty"`

	DateUTS   int64     `gorm:"not null;index:idx_scrobbles_date_uts" json:"date_uts"`
	DateText  string    `gorm:"type:text" json:"date_text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Scrobble.
func (Scrobble) TableName() string {
	return "lastfm_scrobbles"
}
