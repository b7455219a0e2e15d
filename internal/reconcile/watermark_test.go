package reconcile

import (
	"context"
	"errors"
	"testing"
)

type fakeCursorStore struct {
	max int64
	err error
}

func (f *fakeCursorStore) MaxCursor(ctx context.Context) (int64, error) {
	return f.max, f.err
}

func TestWatermarkReadsSinkMax(t *testing.T) {
	wm := Watermark(context.Background(), &fakeCursorStore{max: 1700000000})
	if wm != 1700000000 {
		t.Errorf("got %d, want 1700000000", wm)
	}
}

func TestWatermarkDegradesToZeroOnReadFailure(t *testing.T) {
	wm := Watermark(context.Background(), &fakeCursorStore{err: errors.New("connection refused")})
	if wm != 0 {
		t.Errorf("got %d, want 0 (fetch everything)", wm)
	}
}

func TestIsNew(t *testing.T) {
	testCases := []struct {
		cursor    int64
		watermark int64
		want      bool
	}{
		{cursor: 1050, watermark: 1000, want: true},
		{cursor: 1000, watermark: 1000, want: false},
		{cursor: 990, watermark: 1000, want: false},
		{cursor: 1, watermark: 0, want: true},
	}

	for _, tc := range testCases {
		if got := IsNew(tc.cursor, tc.watermark); got != tc.want {
			t.Errorf("IsNew(%d, %d) = %v, want %v", tc.cursor, tc.watermark, got, tc.want)
		}
	}
}
