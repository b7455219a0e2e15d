// Package lastfm fetches recent listens from the Last.fm
// user.getrecenttracks API. Pages arrive in reverse-chronological order,
// which is what lets the sync stop at the first page with nothing new.
package lastfm

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const apiURL = "http://ws.audioscrobbler.com/2.0/"

// Track is one listen as reported by Last.fm. NowPlaying tracks have no
// date and carry a zero DateUTS.
type Track struct {
	ArtistName string
	ArtistURL  string
	ArtistMBID string
	TrackName  string
	TrackURL   string
	TrackMBID  string
	AlbumName  string
	AlbumMBID  string
	Loved      bool
	ImageSmall string
	ImageLarge string
	DateUTS    int64
	DateText   string
	NowPlaying bool
}

// Client is a Last.fm API client for a single user.
type Client struct {
	http     *resty.Client
	apiKey   string
	username string
}

// NewClient creates a Last.fm client.
// Parameters:
//   - apiKey: Last.fm API key.
//   - username: user whose listens are fetched.
//   - timeout: per-request timeout.
//
// Returns:
//   - *Client: initialized client.
func NewClient(apiKey, username string, timeout time.Duration) *Client {
	http := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(timeout)
	return &Client{http: http, apiKey: apiKey, username: username}
}

// RecentTracks fetches one page of the user's recent listens, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - page: 1-based page number.
//   - limit: tracks per page (Last.fm caps at 200).
//
// Returns:
//   - []Track: parsed tracks for the page.
//   - error: non-nil on transport or API failure.
func (c *Client) RecentTracks(ctx context.Context, page, limit int) ([]Track, error) {
	var body recentTracksResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"method":   "user.getrecenttracks",
			"user":     c.username,
			"api_key":  c.apiKey,
			"format":   "json",
			"limit":    strconv.Itoa(limit),
			"page":     strconv.Itoa(page),
			"extended": "1",
		}).
		SetResult(&body).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("lastfm request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("lastfm returned status %d", resp.StatusCode())
	}

	tracks := make([]Track, 0, len(body.RecentTracks.Track))
	for _, t := range body.RecentTracks.Track {
		tracks = append(tracks, t.toTrack())
	}
	return tracks, nil
}

type recentTracksResponse struct {
	RecentTracks struct {
		Track []rawTrack `json:"track"`
	} `json:"recenttracks"`
}

type rawImage struct {
	Size string `json:"size"`
	URL  string `json:"#text"`
}

type rawTrack struct {
	Artist struct {
		Name string `json:"name"`
		Text string `json:"#text"`
		URL  string `json:"url"`
		MBID string `json:"mbid"`
	} `json:"artist"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	MBID  string `json:"mbid"`
	Loved string `json:"loved"`
	Album struct {
		Text string `json:"#text"`
		MBID string `json:"mbid"`
	} `json:"album"`
	Image []rawImage `json:"image"`
	Date  *struct {
		UTS  string `json:"uts"`
		Text string `json:"#text"`
	} `json:"date"`
	Attr *struct {
		NowPlaying string `json:"nowplaying"`
	} `json:"@attr"`
}

func (t rawTrack) toTrack() Track {
	track := Track{
		ArtistName: t.Artist.Name,
		ArtistURL:  t.Artist.URL,
		ArtistMBID: t.Artist.MBID,
		TrackName:  t.Name,
		TrackURL:   t.URL,
		TrackMBID:  t.MBID,
		AlbumName:  t.Album.Text,
		AlbumMBID:  t.Album.MBID,
		Loved:      t.Loved == "1",
	}
	// Without extended=1 the artist name comes back under "#text"
	if track.ArtistName == "" {
		track.ArtistName = t.Artist.Text
	}
	for _, img := range t.Image {
		switch img.Size {
		case "small":
			track.ImageSmall = img.URL
		case "extralarge":
			track.ImageLarge = img.URL
		}
	}
	if t.Date != nil && t.Date.UTS != "" {
		uts, err := strconv.ParseInt(t.Date.UTS, 10, 64)
		if err == nil {
			track.DateUTS = uts
			track.DateText = t.Date.Text
		}
	}
	if t.Attr != nil && t.Attr.NowPlaying == "true" {
		track.NowPlaying = true
	}
	return track
}
