package metallum

import (
	"context"
	"strings"
)

// AlbumCollection is an ordered discography listing. It wraps its backing
// slice rather than exposing it, so a search result can be iterated and
// filtered but never mutated. Duplicates are possible and preserved.
type AlbumCollection struct {
	albums []*Album
}

// Len returns the number of albums in the collection.
func (c *AlbumCollection) Len() int {
	return len(c.albums)
}

// At returns the album at position i, in listing order.
func (c *AlbumCollection) At(i int) *Album {
	return c.albums[i]
}

// All returns the albums in listing order. The returned slice is a copy.
func (c *AlbumCollection) All() []*Album {
	out := make([]*Album, len(c.albums))
	copy(out, c.albums)
	return out
}

// Filter narrows the collection to the albums whose every named field
// case-insensitively equals the supplied value. Constraints are applied as
// successive narrowing passes over the dwindling candidate set; the result
// is equivalent to AND-combining them. Recognized fields are id, title,
// type, year and label; label is full-only and escalates each candidate
// still in play. An unknown field name is an error, not a non-match.
func (c *AlbumCollection) Filter(ctx context.Context, constraints map[string]string) (*AlbumCollection, error) {
	items := c.All()
	for field, want := range constraints {
		var kept []*Album
		for _, album := range items {
			got, err := album.attr(ctx, field)
			if err != nil {
				return nil, err
			}
			if strings.EqualFold(got, want) {
				kept = append(kept, album)
			}
		}
		items = kept
	}
	return &AlbumCollection{albums: items}, nil
}
