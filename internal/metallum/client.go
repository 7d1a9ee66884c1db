package metallum

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	mhttp "github.com/azagthoth/metallum/internal/http"
)

// BaseURL is the Metal Archives site origin.
const BaseURL = "https://www.metal-archives.com"

// Client exposes the site's read-only entry points: fetch a band or album by
// id, run advanced searches, and fetch lyrics by track id. All page fetches
// go through the shared throttled fetch layer.
type Client struct {
	http *mhttp.Client
}

// NewClient wraps the fetch layer in a Metal Archives client.
func NewClient(fetcher *mhttp.Client) *Client {
	return &Client{http: fetcher}
}

// Fetcher returns the underlying fetch layer, shared with components that
// fetch non-page resources such as artwork.
func (c *Client) Fetcher() *mhttp.Client {
	return c.http
}

// document fetches a relative endpoint and parses it as HTML.
func (c *Client) document(ctx context.Context, endpoint string) (*goquery.Document, error) {
	body, err := c.http.FetchPage(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &ParseError{Endpoint: endpoint, Reason: err.Error()}
	}
	return doc, nil
}

// BandForID fetches and parses the band page for the given numeric id.
func (c *Client) BandForID(ctx context.Context, id string) (*Band, error) {
	return c.bandForURL(ctx, fmt.Sprintf("bands/_/%s", id))
}

func (c *Client) bandForURL(ctx context.Context, endpoint string) (*Band, error) {
	doc, err := c.document(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	data, err := parseBandPage(doc, endpoint)
	if err != nil {
		return nil, err
	}
	return &Band{Band: *data, c: c}, nil
}

// AlbumForID fetches and parses the album page for the given numeric id,
// returning an already-escalated album proxy.
func (c *Client) AlbumForID(ctx context.Context, id string) (*Album, error) {
	endpoint := fmt.Sprintf("albums/_/_/%s", id)
	doc, err := c.document(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	data, err := parseAlbumPage(doc, endpoint)
	if err != nil {
		return nil, err
	}
	return &Album{c: c, full: data}, nil
}
