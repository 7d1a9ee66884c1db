package metallum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/azagthoth/metallum/internal/metallum/dto"
	"github.com/azagthoth/metallum/internal/model"
)

// BandQuery holds the optional filters of an advanced band search.
type BandQuery struct {
	Name            string
	Strict          bool // exact name match
	Genre           string
	Countries       []string // ISO country codes
	YearCreatedFrom int
	YearCreatedTo   int
	Status          []string
	Themes          string
	Location        string
	Label           string
	PageStart       int
}

// values serializes the query into the upstream query-string contract.
func (q BandQuery) values() url.Values {
	v := url.Values{}
	v.Set("bandName", q.Name)
	v.Set("exactBandMatch", boolParam(q.Strict))
	setIfPresent(v, "genre", q.Genre)
	setIfPresent(v, "themes", q.Themes)
	setIfPresent(v, "location", q.Location)
	setIfPresent(v, "bandLabelName", q.Label)
	setYear(v, "yearCreationFrom", q.YearCreatedFrom)
	setYear(v, "yearCreationTo", q.YearCreatedTo)
	for _, c := range q.Countries {
		v.Add("country[]", c)
	}
	for _, s := range q.Status {
		v.Add("status[]", s)
	}
	if q.PageStart > 0 {
		v.Set("iDisplayStart", strconv.Itoa(q.PageStart))
	}
	return v
}

// AlbumQuery holds the optional filters of an advanced album search.
type AlbumQuery struct {
	Title      string
	Strict     bool // exact title match
	Band       string
	BandStrict bool
	YearFrom   int
	YearTo     int
	MonthFrom  int
	MonthTo    int
	Countries  []string
	Location   string
	Label      string
	IndieLabel bool
	Genre      string
	Types      []string
	PageStart  int
}

func (q AlbumQuery) values() url.Values {
	// The endpoint requires month bounds whenever a year bound is given.
	if q.YearFrom != 0 && q.MonthFrom == 0 {
		q.MonthFrom = 1
	}
	if q.YearTo != 0 && q.MonthTo == 0 {
		q.MonthTo = 12
	}

	v := url.Values{}
	v.Set("releaseTitle", q.Title)
	v.Set("exactReleaseMatch", boolParam(q.Strict))
	v.Set("exactBandMatch", boolParam(q.BandStrict))
	v.Set("indieLabel", boolParam(q.IndieLabel))
	setIfPresent(v, "bandName", q.Band)
	setIfPresent(v, "location", q.Location)
	setIfPresent(v, "releaseLabelName", q.Label)
	setIfPresent(v, "genre", q.Genre)
	setYear(v, "releaseYearFrom", q.YearFrom)
	setYear(v, "releaseYearTo", q.YearTo)
	setYear(v, "releaseMonthFrom", q.MonthFrom)
	setYear(v, "releaseMonthTo", q.MonthTo)
	for _, c := range q.Countries {
		v.Add("country[]", c)
	}
	for _, t := range q.Types {
		v.Add("releaseType[]", t)
	}
	if q.PageStart > 0 {
		v.Set("iDisplayStart", strconv.Itoa(q.PageStart))
	}
	return v
}

// SongQuery holds the optional filters of an advanced song search.
type SongQuery struct {
	Title       string
	Strict      bool // exact title match
	Band        string
	BandStrict  bool
	Album       string
	AlbumStrict bool
	Lyrics      string
	Genre       string
	Types       []string
	PageStart   int
}

func (q SongQuery) values() url.Values {
	v := url.Values{}
	v.Set("songTitle", q.Title)
	v.Set("exactSongMatch", boolParam(q.Strict))
	v.Set("exactBandMatch", boolParam(q.BandStrict))
	v.Set("exactReleaseMatch", boolParam(q.AlbumStrict))
	setIfPresent(v, "bandName", q.Band)
	setIfPresent(v, "releaseTitle", q.Album)
	setIfPresent(v, "lyrics", q.Lyrics)
	setIfPresent(v, "genre", q.Genre)
	for _, t := range q.Types {
		v.Add("releaseType[]", t)
	}
	if q.PageStart > 0 {
		v.Set("iDisplayStart", strconv.Itoa(q.PageStart))
	}
	return v
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func setIfPresent(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setYear(v url.Values, key string, n int) {
	if n != 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

// BandResult is one row of a band search: the row's cells interpreted
// through the band result kind.
type BandResult struct {
	ID      string
	Name    string
	Genres  []string
	Country string

	c *Client
}

// URL returns the matched band's canonical relative URL.
func (r *BandResult) URL() string {
	return model.BandRef{ID: r.ID}.URL()
}

// Get resolves the result into the full band entity.
func (r *BandResult) Get(ctx context.Context) (*Band, error) {
	return r.c.BandForID(ctx, r.ID)
}

// AlbumResult is one row of an album search.
type AlbumResult struct {
	ID    string
	Title string
	Type  string

	// Bands lists the releasing bands; splits have more than one.
	Bands []model.BandRef

	c *Client
}

// BandName returns the first releasing band's name.
func (r *AlbumResult) BandName() string {
	if len(r.Bands) == 0 {
		return ""
	}
	return r.Bands[0].Name
}

// URL returns the matched album's canonical relative URL.
func (r *AlbumResult) URL() string {
	return model.AlbumURL(r.ID)
}

// Get resolves the result into the full album entity.
func (r *AlbumResult) Get(ctx context.Context) (*Album, error) {
	return r.c.AlbumForID(ctx, r.ID)
}

// SongResult is one row of a song search. Unlike band and album results it
// is self-contained: every field it promises is already in the row, so there
// is no entity page to resolve to. Its lyrics, when present, are fetched by
// the song id.
type SongResult struct {
	ID       string // lyrics endpoint id; empty when the row has no lyrics link
	Title    string
	Type     string
	AlbumID  string
	Album    string
	BandID   string
	BandName string

	c *Client
}

// Lyrics fetches the song's lyrics. Songs without a lyrics link return the
// empty value.
func (r *SongResult) Lyrics(ctx context.Context) (model.Lyrics, error) {
	if r.ID == "" {
		return "", nil
	}
	return r.c.LyricsForID(ctx, r.ID)
}

// BandSearch is an ordered band search result page plus the upstream total.
type BandSearch struct {
	// Results holds this page's rows in response order.
	Results []*BandResult

	// TotalRecords is the upstream-reported total match count, which may
	// exceed len(Results).
	TotalRecords int
}

// Filter narrows the results to those whose every named field
// case-insensitively equals the supplied value. Fields: name, country.
func (s *BandSearch) Filter(constraints map[string]string) (*BandSearch, error) {
	items := s.Results
	for field, want := range constraints {
		var kept []*BandResult
		for _, r := range items {
			var got string
			switch field {
			case "name":
				got = r.Name
			case "country":
				got = r.Country
			default:
				return nil, fmt.Errorf("band result attribute %q: %w", field, ErrNoSuchAttribute)
			}
			if strings.EqualFold(got, want) {
				kept = append(kept, r)
			}
		}
		items = kept
	}
	return &BandSearch{Results: items, TotalRecords: s.TotalRecords}, nil
}

// AlbumSearch is an ordered album search result page plus the upstream total.
type AlbumSearch struct {
	Results      []*AlbumResult
	TotalRecords int
}

// Filter narrows the results. Fields: title, type, band.
func (s *AlbumSearch) Filter(constraints map[string]string) (*AlbumSearch, error) {
	items := s.Results
	for field, want := range constraints {
		var kept []*AlbumResult
		for _, r := range items {
			var got string
			switch field {
			case "title":
				got = r.Title
			case "type":
				got = r.Type
			case "band":
				got = r.BandName()
			default:
				return nil, fmt.Errorf("album result attribute %q: %w", field, ErrNoSuchAttribute)
			}
			if strings.EqualFold(got, want) {
				kept = append(kept, r)
			}
		}
		items = kept
	}
	return &AlbumSearch{Results: items, TotalRecords: s.TotalRecords}, nil
}

// SongSearch is an ordered song search result page plus the upstream total.
type SongSearch struct {
	Results      []*SongResult
	TotalRecords int
}

// Filter narrows the results. Fields: title, type, band, album.
func (s *SongSearch) Filter(constraints map[string]string) (*SongSearch, error) {
	items := s.Results
	for field, want := range constraints {
		var kept []*SongResult
		for _, r := range items {
			var got string
			switch field {
			case "title":
				got = r.Title
			case "type":
				got = r.Type
			case "band":
				got = r.BandName
			case "album":
				got = r.Album
			default:
				return nil, fmt.Errorf("song result attribute %q: %w", field, ErrNoSuchAttribute)
			}
			if strings.EqualFold(got, want) {
				kept = append(kept, r)
			}
		}
		items = kept
	}
	return &SongSearch{Results: items, TotalRecords: s.TotalRecords}, nil
}

// SearchBands runs an advanced band search. Zero matches is a valid outcome:
// an empty result set with TotalRecords 0, not an error.
func (c *Client) SearchBands(ctx context.Context, q BandQuery) (*BandSearch, error) {
	resp, err := c.search(ctx, "bands", q.values())
	if err != nil {
		return nil, err
	}

	search := &BandSearch{TotalRecords: resp.TotalRecords}
	for _, row := range resp.AAData {
		if len(row) < 3 {
			continue
		}
		name, href := anchorFromCell(row[0])
		if href == "" {
			continue // placeholder row, e.g. the "no results" message
		}
		search.Results = append(search.Results, &BandResult{
			ID:      idFromHref(href),
			Name:    name,
			Genres:  model.SplitGenres(cellText(row[1])),
			Country: cellText(row[2]),
			c:       c,
		})
	}
	return search, nil
}

// SearchAlbums runs an advanced album search.
func (c *Client) SearchAlbums(ctx context.Context, q AlbumQuery) (*AlbumSearch, error) {
	resp, err := c.search(ctx, "albums", q.values())
	if err != nil {
		return nil, err
	}

	search := &AlbumSearch{TotalRecords: resp.TotalRecords}
	for _, row := range resp.AAData {
		if len(row) < 3 {
			continue
		}
		title, albumHref := anchorFromCell(row[1])
		if albumHref == "" {
			continue
		}
		search.Results = append(search.Results, &AlbumResult{
			ID:    idFromHref(albumHref),
			Title: title,
			Type:  cellText(row[2]),
			Bands: bandRefsFromCell(row[0]),
			c:     c,
		})
	}
	return search, nil
}

// SearchSongs runs an advanced song search.
func (c *Client) SearchSongs(ctx context.Context, q SongQuery) (*SongSearch, error) {
	resp, err := c.search(ctx, "songs", q.values())
	if err != nil {
		return nil, err
	}

	search := &SongSearch{TotalRecords: resp.TotalRecords}
	for _, row := range resp.AAData {
		if len(row) < 4 {
			continue
		}
		bandName, bandHref := anchorFromCell(row[0])
		if bandHref == "" {
			continue
		}
		albumTitle, albumHref := anchorFromCell(row[1])
		result := &SongResult{
			Title:    cellText(row[3]),
			Type:     cellText(row[2]),
			AlbumID:  idFromHref(albumHref),
			Album:    albumTitle,
			BandID:   idFromHref(bandHref),
			BandName: bandName,
			c:        c,
		}
		if len(row) > 4 {
			result.ID = lyricsIDFromCell(row[4])
		}
		search.Results = append(search.Results, result)
	}
	return search, nil
}

// search fetches one advanced-search endpoint page and decodes the JSON
// envelope. An empty aaData is a valid zero-result response.
func (c *Client) search(ctx context.Context, kind string, params url.Values) (*dto.SearchResponse, error) {
	endpoint := fmt.Sprintf("search/ajax-advanced/searching/%s/?%s", kind, params.Encode())
	body, err := c.http.FetchPage(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp dto.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Endpoint: endpoint, Reason: fmt.Sprintf("decoding search response: %v", err)}
	}
	if resp.Error != "" {
		return nil, &ParseError{Endpoint: endpoint, Reason: resp.Error}
	}
	return &resp, nil
}

// anchorFromCell extracts the text and href of the first anchor in an HTML
// cell fragment. Both are empty when the cell holds no anchor.
func anchorFromCell(cell string) (text, href string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cell))
	if err != nil {
		return "", ""
	}
	a := doc.Find("a").First()
	if a.Length() == 0 {
		return "", ""
	}
	href, _ = a.Attr("href")
	return strings.TrimSpace(a.Text()), href
}

// bandRefsFromCell extracts every band link from an HTML cell fragment, in
// order. Split releases list multiple bands in one cell.
func bandRefsFromCell(cell string) []model.BandRef {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cell))
	if err != nil {
		return nil
	}
	var refs []model.BandRef
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		refs = append(refs, model.BandRef{
			ID:   idFromHref(href),
			Name: strings.TrimSpace(a.Text()),
		})
	})
	return refs
}

var lyricsLinkID = regexp.MustCompile(`lyricsLink_([0-9A-Za-z]+)`)

// lyricsIDFromCell extracts the song id from a lyrics toggle link cell.
func lyricsIDFromCell(cell string) string {
	m := lyricsLinkID.FindStringSubmatch(cell)
	if m == nil {
		return ""
	}
	return m[1]
}

// cellText strips any markup from a search cell and collapses whitespace.
func cellText(cell string) string {
	if !strings.Contains(cell, "<") {
		return collapseSpace(cell)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cell))
	if err != nil {
		return collapseSpace(cell)
	}
	return collapseSpace(doc.Text())
}
