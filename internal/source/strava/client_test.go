package strava

import (
	"encoding/json"
	"testing"
)

func TestLatLngString(t *testing.T) {
	testCases := []struct {
		name string
		pair []float64
		want string
	}{
		{name: "pair", pair: []float64{52.52, 13.405}, want: "52.52,13.405"},
		{name: "empty", pair: nil, want: ""},
		{name: "single", pair: []float64{52.52}, want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LatLngString(tc.pair); got != tc.want {
				t.Errorf("LatLngString(%v) = %q, want %q", tc.pair, got, tc.want)
			}
		})
	}
}

func TestActivityDecodeKeepsRawPayload(t *testing.T) {
	payload := `[{"id": 42, "name": "Morning Ride", "sport_type": "Ride", "undocumented_field": true}]`

	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raws); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	var a Activity
	if err := json.Unmarshal(raws[0], &a); err != nil {
		t.Fatalf("unmarshal activity: %v", err)
	}
	a.Raw = raws[0]

	if a.ID != 42 || a.SportType != "Ride" {
		t.Errorf("activity = %+v, want id 42 sport Ride", a)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(a.Raw, &roundTrip); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, ok := roundTrip["undocumented_field"]; !ok {
		t.Error("raw payload lost a field the summary does not model")
	}
}
