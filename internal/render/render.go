package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/azagthoth/metallum/internal/metallum"
	"github.com/azagthoth/metallum/internal/model"
)

// Format represents supported output formats.
//
// Each format serves a different consumer:
//   - Text: aligned plain text for terminals
//   - JSON: stable machine-readable output for scripting
type Format int

const (
	// FormatText renders human-readable text.
	FormatText Format = iota

	// FormatJSON renders indented JSON.
	FormatJSON
)

// ParseFormat maps a configuration string to a Format. Unknown strings fall
// back to text.
func ParseFormat(s string) Format {
	if s == "json" {
		return FormatJSON
	}
	return FormatText
}

// Renderer turns bands, albums, search results and lyrics into output
// strings in a fixed format.
//
// Example:
//
//	r := render.NewRenderer(render.FormatText)
//	fmt.Print(r.Band(&band.Band, similar))
type Renderer struct {
	format Format
}

// NewRenderer creates a Renderer for the given format.
func NewRenderer(format Format) *Renderer {
	return &Renderer{format: format}
}

// Band renders a band record. similar may be nil.
func (r *Renderer) Band(band *model.Band, similar []model.SimilarArtist) string {
	if r.format == FormatJSON {
		return r.renderJSON(bandView(band, similar))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (id %s)\n", band.Name, band.ID)
	writeField(&sb, "Country", band.Country)
	writeField(&sb, "Location", band.Location)
	writeField(&sb, "Status", band.Status)
	writeField(&sb, "Formed in", band.FormedIn)
	writeField(&sb, "Genres", strings.Join(band.Genres, ", "))
	writeField(&sb, "Themes", strings.Join(band.Themes, ", "))
	writeField(&sb, "Label", band.Label)

	if len(similar) > 0 {
		sb.WriteString("\nSimilar artists:\n")
		for _, artist := range similar {
			fmt.Fprintf(&sb, "  %-30s %-20s %d\n", artist.Name, artist.Country, artist.Score)
		}
	}
	return sb.String()
}

// Album renders a full album record with its tracklist.
func (r *Renderer) Album(album *model.Album) string {
	if r.format == FormatJSON {
		return r.renderJSON(albumView(album))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (id %s)\n", album.Title, album.ID)
	writeField(&sb, "Band", joinBandNames(album.Bands))
	writeField(&sb, "Type", album.Type)
	if !album.ReleaseDate.IsZero() {
		writeField(&sb, "Released", album.ReleaseDate.Format("January 2, 2006"))
	}
	writeField(&sb, "Label", album.Label)
	if album.Duration > 0 {
		writeField(&sb, "Duration", formatDuration(album.Duration))
	}
	if album.Score != nil && album.ReviewCount != nil {
		writeField(&sb, "Reviews", fmt.Sprintf("%d (avg. %d%%)", *album.ReviewCount, *album.Score))
	}

	if len(album.Tracks) > 0 {
		sb.WriteString("\n")
		discs := album.DiscCount()
		for _, track := range album.Tracks {
			if discs > 1 {
				fmt.Fprintf(&sb, "%d.%02d  %-40s %s\n", track.DiscNumber, track.Number, track.Title, formatDuration(track.Duration))
			} else {
				fmt.Fprintf(&sb, "%2d.  %-40s %s\n", track.Number, track.Title, formatDuration(track.Duration))
			}
		}
	}
	return sb.String()
}

// BandSearch renders a band search result page.
func (r *Renderer) BandSearch(search *metallum.BandSearch) string {
	if r.format == FormatJSON {
		rows := make([]map[string]any, len(search.Results))
		for i, b := range search.Results {
			rows[i] = map[string]any{
				"id":      b.ID,
				"name":    b.Name,
				"genres":  b.Genres,
				"country": b.Country,
			}
		}
		return r.renderJSON(map[string]any{"total": search.TotalRecords, "results": rows})
	}

	var sb strings.Builder
	for _, b := range search.Results {
		fmt.Fprintf(&sb, "%-10s %-30s %-20s %s\n", b.ID, b.Name, b.Country, strings.Join(b.Genres, ", "))
	}
	fmt.Fprintf(&sb, "%d of %d matches shown\n", len(search.Results), search.TotalRecords)
	return sb.String()
}

// AlbumSearch renders an album search result page.
func (r *Renderer) AlbumSearch(search *metallum.AlbumSearch) string {
	if r.format == FormatJSON {
		rows := make([]map[string]any, len(search.Results))
		for i, a := range search.Results {
			rows[i] = map[string]any{
				"id":    a.ID,
				"title": a.Title,
				"type":  a.Type,
				"band":  a.BandName(),
			}
		}
		return r.renderJSON(map[string]any{"total": search.TotalRecords, "results": rows})
	}

	var sb strings.Builder
	for _, a := range search.Results {
		fmt.Fprintf(&sb, "%-10s %-30s %-15s %s\n", a.ID, a.Title, a.Type, joinBandNames(a.Bands))
	}
	fmt.Fprintf(&sb, "%d of %d matches shown\n", len(search.Results), search.TotalRecords)
	return sb.String()
}

// SongSearch renders a song search result page.
func (r *Renderer) SongSearch(search *metallum.SongSearch) string {
	if r.format == FormatJSON {
		rows := make([]map[string]any, len(search.Results))
		for i, s := range search.Results {
			rows[i] = map[string]any{
				"id":    s.ID,
				"title": s.Title,
				"band":  s.BandName,
				"album": s.Album,
				"type":  s.Type,
			}
		}
		return r.renderJSON(map[string]any{"total": search.TotalRecords, "results": rows})
	}

	var sb strings.Builder
	for _, s := range search.Results {
		fmt.Fprintf(&sb, "%-30s %-25s %-25s %s\n", s.Title, s.BandName, s.Album, s.Type)
	}
	fmt.Fprintf(&sb, "%d of %d matches shown\n", len(search.Results), search.TotalRecords)
	return sb.String()
}

// Lyrics renders song lyrics.
func (r *Renderer) Lyrics(lyrics model.Lyrics) string {
	if r.format == FormatJSON {
		return r.renderJSON(map[string]string{"lyrics": lyrics.String()})
	}
	if lyrics.Empty() {
		return "(no lyrics)\n"
	}
	return lyrics.String() + "\n"
}

func (r *Renderer) renderJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data) + "\n"
}

func bandView(band *model.Band, similar []model.SimilarArtist) map[string]any {
	view := map[string]any{
		"id":        band.ID,
		"name":      band.Name,
		"country":   band.Country,
		"location":  band.Location,
		"status":    band.Status,
		"formed_in": band.FormedIn,
		"genres":    band.Genres,
		"themes":    band.Themes,
		"label":     band.Label,
	}
	if similar != nil {
		rows := make([]map[string]any, len(similar))
		for i, artist := range similar {
			rows[i] = map[string]any{
				"id":      artist.ID,
				"name":    artist.Name,
				"country": artist.Country,
				"genres":  artist.Genres,
				"score":   artist.Score,
			}
		}
		view["similar_artists"] = rows
	}
	return view
}

func albumView(album *model.Album) map[string]any {
	tracks := make([]map[string]any, len(album.Tracks))
	for i, track := range album.Tracks {
		tracks[i] = map[string]any{
			"number":         track.Number,
			"overall_number": track.OverallNumber,
			"disc":           track.DiscNumber,
			"title":          track.Title,
			"duration":       track.Duration,
			"band":           track.Band.Name,
			"has_lyrics":     track.HasLyrics,
		}
	}
	view := map[string]any{
		"id":       album.ID,
		"title":    album.Title,
		"type":     album.Type,
		"bands":    joinBandNames(album.Bands),
		"label":    album.Label,
		"duration": album.Duration,
		"tracks":   tracks,
	}
	if !album.ReleaseDate.IsZero() {
		view["release_date"] = album.ReleaseDate.Format(time.DateOnly)
	}
	if album.Score != nil {
		view["score"] = *album.Score
	}
	if album.ReviewCount != nil {
		view["review_count"] = *album.ReviewCount
	}
	return view
}

func writeField(sb *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(sb, "  %-11s %s\n", label+":", value)
	}
}

func joinBandNames(bands []model.BandRef) string {
	names := make([]string, len(bands))
	for i, b := range bands {
		names[i] = b.Name
	}
	return strings.Join(names, " / ")
}

// formatDuration renders a track or album length in seconds as MM:SS, with
// an hour part only when needed.
func formatDuration(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
