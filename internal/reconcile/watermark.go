package reconcile

import (
	"context"

	"github.com/danny/worldly/internal/logger"
)

// CursorStore reads the maximum ordering cursor currently persisted in the
// sink for one time-ordered source.
type CursorStore interface {
	// MaxCursor returns the highest cursor value in the sink, or 0 when
	// the sink is empty.
	MaxCursor(ctx context.Context) (int64, error)
}

// Watermark reads the sink's high-water cursor. A read failure degrades to
// 0 ("fetch everything") instead of aborting: the downstream dedup and
// upsert layers keep a re-fetch harmless.
func Watermark(ctx context.Context, store CursorStore) int64 {
	wm, err := store.MaxCursor(ctx)
	if err != nil {
		logger.CtxWarn(ctx, "could not read watermark, treating sink as empty: %v", err)
		return 0
	}
	return wm
}

// IsNew reports whether a record with the given cursor lies strictly past
// the watermark.
func IsNew(cursor, watermark int64) bool {
	return cursor > watermark
}
