package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/azagthoth/metallum/internal/model"
)

func testAlbum() *model.Album {
	score := 84
	count := 8
	album := &model.Album{
		ID:          "11",
		Title:       "First",
		Type:        model.TypeFullLength,
		Bands:       []model.BandRef{{ID: "123", Name: "Testband"}},
		ReleaseDate: time.Date(1993, 6, 1, 0, 0, 0, 0, time.UTC),
		Label:       "Night Records",
		Duration:    390,
		Score:       &score,
		ReviewCount: &count,
		Tracks: []*model.Track{
			{Number: 1, Title: "Intro", Duration: 90, Band: model.BandRef{Name: "Testband"}},
			{Number: 2, Title: "Frostwind", Duration: 300, Band: model.BandRef{Name: "Testband"}, HasLyrics: true},
		},
	}
	model.NumberTracks(album.Tracks)
	return album
}

func TestRenderer_AlbumText(t *testing.T) {
	out := NewRenderer(FormatText).Album(testAlbum())

	for _, want := range []string{
		"First (id 11)",
		"Band:",
		"Testband",
		"June 1, 1993",
		"06:30",
		"8 (avg. 84%)",
		"Frostwind",
		"05:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_AlbumJSON(t *testing.T) {
	out := NewRenderer(FormatJSON).Album(testAlbum())

	var view map[string]any
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if view["id"] != "11" || view["title"] != "First" {
		t.Errorf("view = %v", view)
	}
	if view["release_date"] != "1993-06-01" {
		t.Errorf("release_date = %v", view["release_date"])
	}
	if view["score"] != float64(84) {
		t.Errorf("score = %v", view["score"])
	}
	tracks, ok := view["tracks"].([]any)
	if !ok || len(tracks) != 2 {
		t.Fatalf("tracks = %v", view["tracks"])
	}
}

func TestRenderer_BandText(t *testing.T) {
	band := &model.Band{
		ID:      "123",
		Name:    "Testband",
		Country: "Norway",
		Genres:  []string{"Black Metal", "Ambient (early)"},
	}
	similar := []model.SimilarArtist{{ID: "456", Name: "Other", Country: "Sweden", Score: 312}}

	out := NewRenderer(FormatText).Band(band, similar)
	for _, want := range []string{"Testband (id 123)", "Norway", "Black Metal, Ambient (early)", "Similar artists:", "Other"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{90, "01:30"},
		{390, "06:30"},
		{3665, "1:01:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error(`ParseFormat("json") should be FormatJSON`)
	}
	if ParseFormat("text") != FormatText {
		t.Error(`ParseFormat("text") should be FormatText`)
	}
	if ParseFormat("") != FormatText {
		t.Error("unknown format should fall back to text")
	}
}
