// Package strava fetches athlete activities from the Strava v3 API.
// Authentication is the refresh-token grant: each sync run exchanges the
// long-lived refresh token for a short-lived access token up front.
package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	tokenURL = "https://www.strava.com/oauth/token"
	apiBase  = "https://www.strava.com/api/v3"
)

// Activity is one Strava activity summary plus its raw payload. The raw
// JSON is kept verbatim so fields the summary does not model survive the
// round trip into the sink.
type Activity struct {
	ID                 int64      `json:"id"`
	Athlete            struct{ ID int64 `json:"id"` } `json:"athlete"`
	Name               string     `json:"name"`
	Type               string     `json:"type"`
	SportType          string     `json:"sport_type"`
	StartDate          time.Time  `json:"start_date"`
	StartDateLocal     string     `json:"start_date_local"`
	Timezone           string     `json:"timezone"`
	Distance           float64    `json:"distance"`
	MovingTime         int        `json:"moving_time"`
	ElapsedTime        int        `json:"elapsed_time"`
	TotalElevationGain float64    `json:"total_elevation_gain"`
	AverageSpeed       float64    `json:"average_speed"`
	MaxSpeed           float64    `json:"max_speed"`
	AverageWatts       float64    `json:"average_watts"`
	AverageHeartrate   float64    `json:"average_heartrate"`
	MaxHeartrate       float64    `json:"max_heartrate"`
	SufferScore        float64    `json:"suffer_score"`
	KudosCount         int        `json:"kudos_count"`
	AchievementCount   int        `json:"achievement_count"`
	PRCount            int        `json:"pr_count"`
	Trainer            bool       `json:"trainer"`
	Commute            bool       `json:"commute"`
	Manual             bool       `json:"manual"`
	Private            bool       `json:"private"`
	GearID             string     `json:"gear_id"`
	DeviceName         string     `json:"device_name"`
	StartLatLng        []float64  `json:"start_latlng"`
	EndLatLng          []float64  `json:"end_latlng"`

	Raw json.RawMessage `json:"-"`
}

// LatLngString formats a [lat, lng] pair the way the sink stores it, or ""
// when absent.
func LatLngString(pair []float64) string {
	if len(pair) < 2 {
		return ""
	}
	return fmt.Sprintf("%g,%g", pair[0], pair[1])
}

// Client is a Strava API client.
type Client struct {
	http         *resty.Client
	clientID     string
	clientSecret string
	refreshToken string

	accessToken string
	// RotatedRefreshToken holds the replacement refresh token when Strava
	// issues one during Authenticate; the operator must persist it.
	RotatedRefreshToken string
}

// NewClient creates a Strava client. Authenticate must be called before any
// data fetch.
func NewClient(clientID, clientSecret, refreshToken string, timeout time.Duration) *Client {
	return &Client{
		http:         resty.New().SetTimeout(timeout),
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Authenticate exchanges the refresh token for an access token and verifies
// it against the /athlete endpoint, catching revoked or mis-scoped tokens
// before the fetch loop starts.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//
// Returns:
//   - error: non-nil if the exchange or verification fails.
func (c *Client) Authenticate(ctx context.Context) error {
	var token tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"refresh_token": c.refreshToken,
			"grant_type":    "refresh_token",
		}).
		SetResult(&token).
		Post(tokenURL)
	if err != nil {
		return fmt.Errorf("strava token refresh failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("strava token refresh failed: status %d: %s", resp.StatusCode(), resp.String())
	}
	if token.AccessToken == "" {
		return fmt.Errorf("strava token response missing access_token")
	}

	check, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		Get(apiBase + "/athlete")
	if err != nil {
		return fmt.Errorf("strava athlete check failed: %w", err)
	}
	if check.StatusCode() == 401 {
		return fmt.Errorf("strava refresh token expired or revoked; re-run the OAuth flow with scope activity:read_all")
	}
	if check.IsError() {
		return fmt.Errorf("strava athlete check failed: status %d", check.StatusCode())
	}

	c.accessToken = token.AccessToken
	if token.RefreshToken != "" && token.RefreshToken != c.refreshToken {
		c.RotatedRefreshToken = token.RefreshToken
	}
	return nil
}

// RotatedToken returns the replacement refresh token issued during
// Authenticate, or "" when the token was not rotated.
func (c *Client) RotatedToken() string {
	return c.RotatedRefreshToken
}

// Activities fetches one page of the athlete's activities.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - page: 1-based page number.
//   - perPage: activities per page (Strava caps at 200).
//
// Returns:
//   - []Activity: parsed activities with raw payloads attached.
//   - error: non-nil on transport or API failure.
func (c *Client) Activities(ctx context.Context, page, perPage int) ([]Activity, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.accessToken).
		SetQueryParams(map[string]string{
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(perPage),
		}).
		Get(apiBase + "/athlete/activities")
	if err != nil {
		return nil, fmt.Errorf("strava activities fetch failed: %w", err)
	}
	if resp.StatusCode() == 401 {
		return nil, fmt.Errorf("strava unauthorized on activities; token may lack activity:read_all scope")
	}
	if resp.IsError() {
		return nil, fmt.Errorf("strava activities fetch failed: status %d", resp.StatusCode())
	}

	// Decode in two passes so each activity keeps its raw payload.
	var raws []json.RawMessage
	if err := json.Unmarshal(resp.Body(), &raws); err != nil {
		return nil, fmt.Errorf("strava activities decode failed: %w", err)
	}
	activities := make([]Activity, 0, len(raws))
	for _, raw := range raws {
		var a Activity
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("strava activity decode failed: %w", err)
		}
		a.Raw = raw
		activities = append(activities, a)
	}
	return activities, nil
}
