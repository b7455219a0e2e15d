package domain

import "time"

// FilmShelf identifies which Letterboxd export a film row came from.
type FilmShelf string

const (
	ShelfWatched   FilmShelf = "watched"
	ShelfWatchlist FilmShelf = "watchlist"
)

// Film represents one Letterboxd export row. (Name, Year, Shelf) is the
// natural key; Letterboxd has no stable id in its exports.
type Film struct {
	ID            string     `gorm:"type:text;primaryKey" json:"id"`
	Name          string     `gorm:"type:text;not null;uniqueIndex:idx_films_key" json:"name"`
	Year          string     `gorm:"type:text;uniqueIndex:idx_films_key" json:"year,omitempty"`
	Shelf         FilmShelf  `gorm:"type:text;not null;uniqueIndex:idx_films_key;index:idx_films_shelf" json:"shelf"`
	WatchedOn     *time.Time `json:"watched_on,omitempty"`
	Rating        *float64   `json:"rating,omitempty"`
	LetterboxdURI string     `gorm:"type:text" json:"letterboxd_uri,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TableName returns the database table name for Film.
func (Film) TableName() string {
	return "letterboxd_films"
}

// FilmEnrichment holds TMDB metadata for a film, keyed by the same
// (Name, Year) pair the film rows use. Enrichment is resumable: rows
// already present are skipped on the next run.
type FilmEnrichment struct {
	ID                  string      `gorm:"type:text;primaryKey" json:"id"`
	Name                string      `gorm:"type:text;not null;uniqueIndex:idx_enrichment_key" json:"name"`
	Year                string      `gorm:"type:text;uniqueIndex:idx_enrichment_key" json:"year,omitempty"`
	TMDBID              int64       `gorm:"index:idx_enrichment_tmdb" json:"tmdb_id"`
	RuntimeMinutes      int         `json:"runtime_minutes,omitempty"`
	Genres              StringArray `gorm:"type:text" json:"genres,omitempty"`
	Director            string      `gorm:"type:text" json:"director,omitempty"`
	Overview            string      `gorm:"type:text" json:"overview,omitempty"`
	PosterPath          string      `gorm:"type:text" json:"poster_path,omitempty"`
	BackdropPath        string      `gorm:"type:text" json:"backdrop_path,omitempty"`
	ReleaseDate         string      `gorm:"type:text" json:"release_date,omitempty"`
	Tagline             string      `gorm:"type:text" json:"tagline,omitempty"`
	VoteAverage         float64     `json:"vote_average,omitempty"`
	VoteCount           int64       `json:"vote_count,omitempty"`
	ProductionCountries StringArray `gorm:"type:text" json:"production_countries,omitempty"`
	SpokenLanguages     string      `gorm:"type:text" json:"spoken_languages,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// TableName returns the database table name for FilmEnrichment.
func (FilmEnrichment) TableName() string {
	return "film_enrichment"
}
