package domain

import "time"

// SyncStatus represents the terminal state of a sync run.
// Values include SyncStatusCompleted and SyncStatusFailed.
type SyncStatus string

const (
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncRun records the report emitted at the end of one sync run. Counts
// distinguish records fetched from the source, written to the sink, and
// skipped as duplicates.
type SyncRun struct {
	ID         string     `gorm:"type:text;primaryKey" json:"id"`
	Source     string     `gorm:"type:text;not null;index" json:"source"`
	Status     SyncStatus `gorm:"type:text;default:completed" json:"status"`
	Fetched    int        `gorm:"default:0" json:"fetched"`
	Inserted   int        `gorm:"default:0" json:"inserted"`
	Updated    int        `gorm:"default:0" json:"updated"`
	Skipped    int        `gorm:"default:0" json:"skipped"`
	Failed     int        `gorm:"default:0" json:"failed"`
	ErrorLog   string     `gorm:"type:text" json:"error_log,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName returns the database table name for SyncRun.
func (SyncRun) TableName() string {
	return "sync_runs"
}
