package metallum

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/azagthoth/metallum/internal/model"
)

// Band couples a parsed band record with the client needed to navigate to
// its discography and similar artists.
type Band struct {
	model.Band

	c *Client
}

// parseBandPage extracts a band record from its page. The page heading is
// the root structure: if it is missing, the page is not a band page and a
// *ParseError is returned.
func parseBandPage(doc *goquery.Document, endpoint string) (*model.Band, error) {
	nameLink := doc.Find("h1.band_name a")
	if nameLink.Length() == 0 {
		return nil, &ParseError{Endpoint: endpoint, Reason: "band name heading not found"}
	}

	href, _ := nameLink.Attr("href")
	added, modified := auditTimes(doc)

	band := &model.Band{
		ID:       idFromHref(href),
		Name:     strings.TrimSpace(nameLink.Text()),
		Country:  ddTextForLabel(doc, "Country of origin:"),
		Location: ddTextForLabel(doc, "Location:"),
		Status:   ddTextForLabel(doc, "Status:"),
		FormedIn: ddTextForLabel(doc, "Formed in:"),
		Label:    ddTextForLabel(doc, "Current label:"),
		LogoURL:  imageHref(doc, "#logo"),
		PhotoURL: imageHref(doc, "#photo"),
		Added:    added,
		Modified: modified,
	}

	if genres := ddTextForLabel(doc, "Genre:"); genres != "" {
		band.Genres = model.SplitGenres(genres)
	}
	if themes := ddTextForLabel(doc, "Lyrical themes:"); themes != "" {
		band.Themes = strings.Split(themes, ", ")
	}

	return band, nil
}

// Albums fetches the band's discography listing. Each row becomes a partial
// album; no album page is fetched until a full-only field is accessed.
func (b *Band) Albums(ctx context.Context) (*AlbumCollection, error) {
	endpoint := fmt.Sprintf("band/discography/id/%s/tab/all", b.ID)
	doc, err := b.c.document(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table")
	if table.Length() == 0 {
		return nil, &ParseError{Endpoint: endpoint, Reason: "discography table not found"}
	}

	var albums []*Album
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		link := row.Find("td").Eq(0).Find("a")
		href, ok := link.Attr("href")
		if !ok {
			return // "nothing entered yet" placeholder row
		}
		year, _ := strconv.Atoi(strings.TrimSpace(row.Find("td").Eq(2).Text()))
		albums = append(albums, &Album{
			c: b.c,
			partial: &model.AlbumInfo{
				ID:    idFromHref(href),
				Title: strings.TrimSpace(link.Text()),
				Type:  strings.TrimSpace(row.Find("td").Eq(1).Text()),
				Year:  year,
			},
		})
	})

	return &AlbumCollection{albums: albums}, nil
}

// SimilarArtists fetches the band's similar-artists tab, ordered by score.
func (b *Band) SimilarArtists(ctx context.Context) ([]model.SimilarArtist, error) {
	endpoint := fmt.Sprintf("band/ajax-recommendations/id/%s", b.ID)
	doc, err := b.c.document(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var artists []model.SimilarArtist
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		link := row.Find("td").Eq(0).Find("a")
		href, ok := link.Attr("href")
		if !ok {
			return // header or "no recommendations" row
		}
		cells := row.Find("td")
		score, err := strconv.Atoi(strings.TrimSpace(cells.Eq(3).Text()))
		if err != nil {
			return // the "see more" footer row has no score cell
		}
		artists = append(artists, model.SimilarArtist{
			ID:      idFromHref(href),
			Name:    strings.TrimSpace(link.Text()),
			Country: strings.TrimSpace(cells.Eq(1).Text()),
			Genres:  model.SplitGenres(strings.TrimSpace(cells.Eq(2).Text())),
			Score:   score,
		})
	})

	return artists, nil
}
