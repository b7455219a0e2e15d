package domain

import "time"

// Activity represents one Strava activity. StravaID is the stable external
// id the source guarantees; syncs replace the row on conflict so edits made
// on Strava propagate here.
type Activity struct {
	ID                 string    `gorm:"type:text;primaryKey" json:"id"`
	StravaID           int64     `gorm:"not null;uniqueIndex:idx_activities_strava_id" json:"strava_id"`
	AthleteID          int64     `json:"athlete_id,omitempty"`
	Name               string    `gorm:"type:text" json:"name"`
	Type               string    `gorm:"type:text" json:"type,omitempty"`
	SportType          string    `gorm:"type:text;index:idx_activities_sport" json:"sport_type,omitempty"`
	StartDate          time.Time `json:"start_date"`
	StartDateLocal     string    `gorm:"type:text" json:"start_date_local,omitempty"`
	Timezone           string    `gorm:"type:text" json:"timezone,omitempty"`
	Distance           float64   `json:"distance"`
	MovingTime         int       `json:"moving_time"`
	ElapsedTime        int       `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	AverageSpeed       float64   `json:"average_speed,omitempty"`
	MaxSpeed           float64   `json:"max_speed,omitempty"`
	AverageWatts       float64   `json:"average_watts,omitempty"`
	AverageHeartrate   float64   `json:"average_heartrate,omitempty"`
	MaxHeartrate       float64   `json:"max_heartrate,omitempty"`
	SufferScore        float64   `json:"suffer_score,omitempty"`
	KudosCount         int       `json:"kudos_count"`
	AchievementCount   int       `json:"achievement_count"`
	PRCount            int       `json:"pr_count"`
	Trainer            bool      `json:"trainer"`
	Commute            bool      `json:"commute"`
	Manual             bool      `json:"manual"`
	Private            bool      `json:"private"`
	GearID             string    `gorm:"type:text" json:"gear_id,omitempty"`
	DeviceName         string    `gorm:"type:text" json:"device_name,omitempty"`
	StartLatLng        string    `gorm:"type:text" json:"start_latlng,omitempty"`
	EndLatLng          string    `gorm:"type:text" json:"end_latlng,omitempty"`
	Raw                RawJSON   `gorm:"type:text" json:"raw,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName returns the database table name for Activity.
func (Activity) TableName() string {
	return "strava_activities"
}
