package reconcile

import "time"

// Stats is the report every sync run ends with, whatever happened along
// the way. FetchErr records a fetch loop that ended early so an operator
// can tell "nothing new" from "source unreachable"; the run still counts
// as completed with a partial result.
type Stats struct {
	Source     string
	Fetched    int
	Inserted   int
	Updated    int
	Skipped    int
	Failed     int
	FetchErr   error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Written returns the total number of records that reached the sink.
func (s *Stats) Written() int {
	return s.Inserted + s.Updated
}
