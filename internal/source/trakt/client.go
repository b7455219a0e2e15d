// Package trakt fetches a user's watch history from the Trakt v2 API.
package trakt

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const apiBase = "https://api.trakt.tv"

// HistoryItem is one Trakt history event. Movie or Episode/Show is set
// depending on Type.
type HistoryItem struct {
	ID        int64     `json:"id"`
	WatchedAt time.Time `json:"watched_at"`
	Action    string    `json:"action"`
	Type      string    `json:"type"`
	Movie     *Movie    `json:"movie,omitempty"`
	Episode   *Episode  `json:"episode,omitempty"`
	Show      *Show     `json:"show,omitempty"`
}

// Movie identifies a Trakt movie.
type Movie struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	IDs   IDs    `json:"ids"`
}

// Episode identifies a Trakt episode.
type Episode struct {
	Season int    `json:"season"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	IDs    IDs    `json:"ids"`
}

// Show identifies a Trakt show.
type Show struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	IDs   IDs    `json:"ids"`
}

// IDs carries the cross-service identifiers Trakt attaches to entities.
type IDs struct {
	Trakt int64  `json:"trakt"`
	IMDB  string `json:"imdb"`
	TMDB  int64  `json:"tmdb"`
}

// Client is a Trakt API client.
type Client struct {
	http     *resty.Client
	username string
}

// NewClient creates a Trakt client authenticated with an OAuth access token.
func NewClient(clientID, accessToken, username string, timeout time.Duration) *Client {
	http := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("trakt-api-version", "2").
		SetHeader("trakt-api-key", clientID).
		SetAuthToken(accessToken)
	return &Client{http: http, username: username}
}

// History fetches one page of the user's watch history, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - page: 1-based page number.
//   - limit: items per page (Trakt caps at 100 per type).
//
// Returns:
//   - []HistoryItem: parsed history events.
//   - error: non-nil on transport or API failure.
func (c *Client) History(ctx context.Context, page, limit int) ([]HistoryItem, error) {
	var items []HistoryItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":  strconv.Itoa(page),
			"limit": strconv.Itoa(limit),
		}).
		SetResult(&items).
		Get(fmt.Sprintf("/users/%s/history", c.username))
	if err != nil {
		return nil, fmt.Errorf("trakt history fetch failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("trakt history fetch failed: status %d", resp.StatusCode())
	}
	return items, nil
}
