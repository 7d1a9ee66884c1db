package metallum

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/azagthoth/metallum/internal/model"
)

// Album is a lazy proxy over the two representations of one album: the
// partial record from a discography row, and the full record from the
// album's own page.
//
// An Album constructed from a listing row starts partial. Accessing a field
// the partial record provides (id, title, type, year) costs nothing; the
// first access to any other field escalates the proxy by fetching and
// parsing the album page. Escalation happens at most once: later full-only
// accesses reuse the fetched record, and a failed escalation leaves the
// proxy partial so the caller sees the underlying fetch or parse error.
type Album struct {
	c *Client

	mu      sync.Mutex
	partial *model.AlbumInfo
	full    *model.Album
}

// ID returns the album's stable numeric identifier.
func (a *Album) ID() string {
	if full := a.held(); full != nil {
		return full.ID
	}
	return a.partial.ID
}

// URL returns the album's canonical relative URL.
func (a *Album) URL() string {
	return model.AlbumURL(a.ID())
}

// Title returns the album title.
func (a *Album) Title() string {
	if full := a.held(); full != nil {
		return full.Title
	}
	return a.partial.Title
}

// Type returns the release type, e.g. "Full-length" or "Split".
func (a *Album) Type() string {
	if full := a.held(); full != nil {
		return full.Type
	}
	return a.partial.Type
}

// Year returns the release year.
func (a *Album) Year() int {
	if full := a.held(); full != nil {
		return full.Year()
	}
	return a.partial.Year
}

// Bands returns the releasing bands. Escalates.
func (a *Album) Bands(ctx context.Context) ([]model.BandRef, error) {
	full, err := a.Full(ctx)
	if err != nil {
		return nil, err
	}
	return full.Bands, nil
}

// ReleaseDate returns the release date. Escalates.
func (a *Album) ReleaseDate(ctx context.Context) (time.Time, error) {
	full, err := a.Full(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return full.ReleaseDate, nil
}

// Label returns the releasing label. Escalates.
func (a *Album) Label(ctx context.Context) (string, error) {
	full, err := a.Full(ctx)
	if err != nil {
		return "", err
	}
	return full.Label, nil
}

// Duration returns the total running time in seconds. Escalates.
func (a *Album) Duration(ctx context.Context) (int, error) {
	full, err := a.Full(ctx)
	if err != nil {
		return 0, err
	}
	return full.Duration, nil
}

// Score returns the average review score in percent, nil when the album has
// no reviews. Escalates.
func (a *Album) Score(ctx context.Context) (*int, error) {
	full, err := a.Full(ctx)
	if err != nil {
		return nil, err
	}
	return full.Score, nil
}

// ReviewCount returns the number of reviews, nil when the album has none.
// Escalates.
func (a *Album) ReviewCount(ctx context.Context) (*int, error) {
	full, err := a.Full(ctx)
	if err != nil {
		return nil, err
	}
	return full.ReviewCount, nil
}

// CoverURL returns the cover art URL, "" when the album has none. Escalates.
func (a *Album) CoverURL(ctx context.Context) (string, error) {
	full, err := a.Full(ctx)
	if err != nil {
		return "", err
	}
	return full.CoverURL, nil
}

// Tracks returns the album's tracklist. Escalates.
func (a *Album) Tracks(ctx context.Context) ([]*model.Track, error) {
	full, err := a.Full(ctx)
	if err != nil {
		return nil, err
	}
	return full.Tracks, nil
}

// DiscCount returns the number of distinct discs. Escalates.
func (a *Album) DiscCount(ctx context.Context) (int, error) {
	full, err := a.Full(ctx)
	if err != nil {
		return 0, err
	}
	return full.DiscCount(), nil
}

// Full returns the full album record, escalating the proxy if it still holds
// only the partial representation.
func (a *Album) Full(ctx context.Context) (*model.Album, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.full != nil {
		return a.full, nil
	}

	endpoint := fmt.Sprintf("albums/_/_/%s", a.partial.ID)
	doc, err := a.c.document(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	full, err := parseAlbumPage(doc, endpoint)
	if err != nil {
		return nil, err
	}
	a.full = full
	return full, nil
}

// held returns the full record without escalating, or nil while partial.
func (a *Album) held() *model.Album {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.full
}

// attr resolves a named field to its string value for collection filtering.
// Partial-covered fields never escalate; full-only fields do.
func (a *Album) attr(ctx context.Context, name string) (string, error) {
	switch name {
	case "id":
		return a.ID(), nil
	case "title":
		return a.Title(), nil
	case "type":
		return a.Type(), nil
	case "year":
		return strconv.Itoa(a.Year()), nil
	case "label":
		return a.Label(ctx)
	default:
		return "", fmt.Errorf("album attribute %q: %w", name, ErrNoSuchAttribute)
	}
}

var (
	reviewCount = regexp.MustCompile(`(\d+)`)
	reviewScore = regexp.MustCompile(`(\d{1,3})%`)
)

// parseAlbumPage extracts a full album record, tracklist included, from the
// album's own page. The page heading is the root structure: if it is
// missing, a *ParseError is returned.
func parseAlbumPage(doc *goquery.Document, endpoint string) (*model.Album, error) {
	titleLink := doc.Find("h1.album_name a")
	if titleLink.Length() == 0 {
		return nil, &ParseError{Endpoint: endpoint, Reason: "album name heading not found"}
	}

	href, _ := titleLink.Attr("href")
	added, modified := auditTimes(doc)

	album := &model.Album{
		ID:       idFromHref(href),
		Title:    strings.TrimSpace(titleLink.Text()),
		Type:     ddTextForLabel(doc, "Type:"),
		CoverURL: imageHref(doc, "#cover"),
		Added:    added,
		Modified: modified,
	}

	doc.Find(".band_name").Find("a").Each(func(_ int, s *goquery.Selection) {
		bandHref, _ := s.Attr("href")
		album.Bands = append(album.Bands, model.BandRef{
			ID:   idFromHref(bandHref),
			Name: strings.TrimSpace(s.Text()),
		})
	})

	if s := ddTextForLabel(doc, "Release date:"); s != "" {
		date, err := model.ParseReleaseDate(s)
		if err != nil {
			return nil, &ParseError{Endpoint: endpoint, Reason: err.Error()}
		}
		album.ReleaseDate = date
	}

	if dd := ddForLabel(doc, "Label:"); dd != nil {
		album.Label = strings.TrimSpace(dd.Find("a").First().Text())
		if album.Label == "" {
			album.Label = strings.TrimSpace(dd.Text())
		}
	}

	if s := strings.TrimSpace(doc.Find("table.table_lyrics td strong").First().Text()); s != "" {
		if seconds, err := model.ParseDuration(s); err == nil {
			album.Duration = seconds
		}
	}

	if reviews := ddTextForLabel(doc, "Reviews:"); reviews != "" {
		if m := reviewCount.FindStringSubmatch(reviews); m != nil {
			n, _ := strconv.Atoi(m[1])
			album.ReviewCount = &n
		}
		if m := reviewScore.FindStringSubmatch(reviews); m != nil {
			n, _ := strconv.Atoi(m[1])
			album.Score = &n
		}
	}

	album.Tracks = parseTracklist(doc, album)
	return album, nil
}

// parseTracklist extracts the track rows from an album page and assigns disc
// and overall numbers. On split releases each track's owner band is resolved
// from the raw title prefix; otherwise every track belongs to the first
// releasing band.
func parseTracklist(doc *goquery.Document, album *model.Album) []*model.Track {
	bandNames := make([]string, len(album.Bands))
	for i, b := range album.Bands {
		bandNames[i] = b.Name
	}

	var tracks []*model.Track
	doc.Find("table.table_lyrics").Find("tr.odd, tr.even").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("displayNone") {
			return
		}
		cells := row.Find("td")

		numberText := strings.TrimSuffix(strings.TrimSpace(cells.Eq(0).Text()), ".")
		number, _ := strconv.Atoi(numberText)
		id, _ := cells.Eq(0).Find("a").Attr("name")
		fullTitle := collapseSpace(cells.Eq(1).Text())

		duration := 0
		if s := strings.TrimSpace(cells.Eq(2).Text()); s != "" {
			if seconds, err := model.ParseDuration(s); err == nil {
				duration = seconds
			}
		}

		track := &model.Track{
			ID:        id,
			Number:    number,
			FullTitle: fullTitle,
			Title:     fullTitle,
			Duration:  duration,
			HasLyrics: strings.Contains(cells.Eq(3).Text(), "Show lyrics"),
		}

		if album.Type == model.TypeSplit {
			if owner, title, ok := model.SplitTitle(fullTitle, bandNames); ok {
				track.Title = title
				for _, b := range album.Bands {
					if b.Name == owner {
						track.Band = b
						break
					}
				}
			}
		} else if len(album.Bands) > 0 {
			track.Band = album.Bands[0]
		}

		tracks = append(tracks, track)
	})

	model.NumberTracks(tracks)
	return tracks
}
