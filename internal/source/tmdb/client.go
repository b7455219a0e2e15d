// Package tmdb looks up movie metadata from The Movie Database API for the
// Letterboxd enrichment pass.
package tmdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiBase   = "https://api.themoviedb.org/3"
	imageBase = "https://image.tmdb.org/t/p"
)

// Details holds the slice of TMDB movie metadata the dashboard uses.
type Details struct {
	TMDBID              int64
	RuntimeMinutes      int
	Genres              []string
	Director            string
	Overview            string
	PosterPath          string
	BackdropPath        string
	ReleaseDate         string
	Tagline             string
	VoteAverage         float64
	VoteCount           int64
	ProductionCountries []string
	SpokenLanguages     string
}

// Client is a TMDB API client.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient creates a TMDB client.
func NewClient(apiKey string, timeout time.Duration) *Client {
	http := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: http, apiKey: apiKey}
}

type searchResponse struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}

// SearchMovie returns the id of the best match for a title, or 0 when TMDB
// has none. A non-200 response counts as no match, mirroring the skip-not-
// fail posture of the enrichment pass.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: movie title.
//   - year: release year; empty widens the search.
//
// Returns:
//   - int64: TMDB movie id, 0 when no match.
//   - error: non-nil on transport failure only.
func (c *Client) SearchMovie(ctx context.Context, name, year string) (int64, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("query", name).
		SetQueryParam("language", "en-US")
	if y := strings.TrimSpace(year); y != "" {
		req.SetQueryParam("year", y)
	}

	var body searchResponse
	resp, err := req.SetResult(&body).Get("/search/movie")
	if err != nil {
		return 0, fmt.Errorf("tmdb search failed: %w", err)
	}
	if resp.IsError() || len(body.Results) == 0 {
		return 0, nil
	}
	return body.Results[0].ID, nil
}

type detailsResponse struct {
	Runtime  int    `json:"runtime"`
	Overview string `json:"overview"`
	Tagline  string `json:"tagline"`
	Genres   []struct {
		Name string `json:"name"`
	} `json:"genres"`
	PosterPath          string  `json:"poster_path"`
	BackdropPath        string  `json:"backdrop_path"`
	ReleaseDate         string  `json:"release_date"`
	VoteAverage         float64 `json:"vote_average"`
	VoteCount           int64   `json:"vote_count"`
	ProductionCountries []struct {
		Name string `json:"name"`
	} `json:"production_countries"`
	SpokenLanguages []struct {
		EnglishName string `json:"english_name"`
		Name        string `json:"name"`
	} `json:"spoken_languages"`
	Credits struct {
		Crew []struct {
			Job  string `json:"job"`
			Name string `json:"name"`
		} `json:"crew"`
	} `json:"credits"`
}

// MovieDetails fetches details plus credits for a movie id. A non-200
// response yields (nil, nil): the film is skipped, not failed.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - tmdbID: TMDB movie id.
//
// Returns:
//   - *Details: movie metadata, nil when unavailable.
//   - error: non-nil on transport failure only.
func (c *Client) MovieDetails(ctx context.Context, tmdbID int64) (*Details, error) {
	var body detailsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("language", "en-US").
		SetQueryParam("append_to_response", "credits").
		SetResult(&body).
		Get(fmt.Sprintf("/movie/%d", tmdbID))
	if err != nil {
		return nil, fmt.Errorf("tmdb details failed: %w", err)
	}
	if resp.IsError() {
		return nil, nil
	}

	d := &Details{
		TMDBID:         tmdbID,
		RuntimeMinutes: body.Runtime,
		Overview:       strings.TrimSpace(body.Overview),
		Tagline:        strings.TrimSpace(body.Tagline),
		ReleaseDate:    strings.TrimSpace(body.ReleaseDate),
		VoteAverage:    body.VoteAverage,
		VoteCount:      body.VoteCount,
	}
	for _, g := range body.Genres {
		if g.Name != "" {
			d.Genres = append(d.Genres, g.Name)
		}
	}
	for _, pc := range body.ProductionCountries {
		if pc.Name != "" {
			d.ProductionCountries = append(d.ProductionCountries, pc.Name)
		}
	}
	for _, p := range body.Credits.Crew {
		if strings.EqualFold(strings.TrimSpace(p.Job), "director") {
			d.Director = strings.TrimSpace(p.Name)
			break
		}
	}
	// First three spoken languages, english names preferred
	var langs []string
	for i, l := range body.SpokenLanguages {
		if i >= 3 {
			break
		}
		name := l.EnglishName
		if name == "" {
			name = l.Name
		}
		langs = append(langs, name)
	}
	d.SpokenLanguages = strings.Join(langs, ", ")

	if p := strings.TrimSpace(body.PosterPath); p != "" {
		d.PosterPath = imageBase + "/w500" + p
	}
	if b := strings.TrimSpace(body.BackdropPath); b != "" {
		d.BackdropPath = imageBase + "/w780" + b
	}
	return d, nil
}
