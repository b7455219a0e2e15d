package lastfm

import (
	"encoding/json"
	"testing"
)

const samplePayload = `{
  "recenttracks": {
    "track": [
      {
        "artist": {"name": "Boards of Canada", "url": "https://www.last.fm/music/Boards+of+Canada", "mbid": "mbid-artist"},
        "name": "Roygbiv",
        "url": "https://www.last.fm/music/_/Roygbiv",
        "mbid": "mbid-track",
        "loved": "1",
        "album": {"#text": "Music Has the Right to Children", "mbid": "mbid-album"},
        "image": [
          {"size": "small", "#text": "https://img/small.png"},
          {"size": "large", "#text": "https://img/large.png"},
          {"size": "extralarge", "#text": "https://img/xl.png"}
        ],
        "date": {"uts": "1717200000", "#text": "01 Jun 2024, 00:00"}
      },
      {
        "artist": {"#text": "Fallback Artist"},
        "name": "Streaming Now",
        "loved": "0",
        "@attr": {"nowplaying": "true"}
      }
    ]
  }
}`

func TestRecentTracksParsing(t *testing.T) {
	var body recentTracksResponse
	if err := json.Unmarshal([]byte(samplePayload), &body); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if len(body.RecentTracks.Track) != 2 {
		t.Fatalf("parsed %d tracks, want 2", len(body.RecentTracks.Track))
	}

	played := body.RecentTracks.Track[0].toTrack()
	if played.ArtistName != "Boards of Canada" {
		t.Errorf("ArtistName = %q", played.ArtistName)
	}
	if played.AlbumName != "Music Has the Right to Children" {
		t.Errorf("AlbumName = %q", played.AlbumName)
	}
	if !played.Loved {
		t.Error("Loved = false, want true")
	}
	if played.DateUTS != 1717200000 {
		t.Errorf("DateUTS = %d, want 1717200000", played.DateUTS)
	}
	if played.ImageSmall != "https://img/small.png" || played.ImageLarge != "https://img/xl.png" {
		t.Errorf("images = %q, %q; want small and extralarge variants", played.ImageSmall, played.ImageLarge)
	}
	if played.NowPlaying {
		t.Error("NowPlaying = true for a dated listen")
	}

	playing := body.RecentTracks.Track[1].toTrack()
	if !playing.NowPlaying {
		t.Error("NowPlaying = false, want true")
	}
	if playing.DateUTS != 0 {
		t.Errorf("DateUTS = %d, want 0 for a now-playing entry", playing.DateUTS)
	}
	if playing.ArtistName != "Fallback Artist" {
		t.Errorf("ArtistName = %q, want the #text fallback", playing.ArtistName)
	}
}
