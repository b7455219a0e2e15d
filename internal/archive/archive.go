// Package archive stores raw source payloads in an S3-compatible object
// store. Each sync run can snapshot exactly what the remote API returned,
// so normalization bugs can be replayed against the original data.
package archive

import (
	"context"
	"fmt"
	"time"
)

// Store is the write-side surface the sync runner uses.
type Store interface {
	// Put uploads one object.
	Put(ctx context.Context, key string, body []byte, contentType string) error

	// URL returns the public URL for an object, or "" when the store has
	// no public endpoint.
	URL(key string) string
}

// SnapshotKey builds the object key for one run's raw payload.
// Parameters:
//   - source: sync source identifier.
//   - ts: run start time.
//
// Returns:
//   - string: key of the form raw/<source>/<timestamp>.json.
func SnapshotKey(source string, ts time.Time) string {
	return fmt.Sprintf("raw/%s/%s.json", source, ts.UTC().Format("20060102T150405Z"))
}
