package model

import (
	"fmt"
	"time"
)

// Release type values as they appear on Metal Archives.
const (
	TypeFullLength  = "Full-length"
	TypeEP          = "EP"
	TypeSingle      = "Single"
	TypeDemo        = "Demo"
	TypeVideo       = "Video/VHS"
	TypeCompilation = "Compilation"
	TypeDVD         = "DVD"
	TypeLive        = "Live album"
	TypeSplit       = "Split"
)

// AlbumURL returns the canonical relative URL for an album id.
//
// Example:
//
//	AlbumURL("547") // "albums/_/_/547"
func AlbumURL(id string) string {
	return fmt.Sprintf("albums/_/_/%s", id)
}

// AlbumInfo is the partial album record sourced from one row of a band's
// discography listing. It carries only the facts present in that row; the
// rest of the album's data lives on its own page and is represented by Album.
type AlbumInfo struct {
	// ID is the album's stable numeric identifier, e.g. "547".
	ID string

	// Title is the album title from the listing row.
	Title string

	// Type is the release type, e.g. "Full-length" or "Split".
	Type string

	// Year is the release year from the listing row.
	Year int
}

// URL returns the album's canonical relative URL.
func (a AlbumInfo) URL() string {
	return AlbumURL(a.ID)
}

// Album holds every fact extracted from an album's own page, including its
// full tracklist.
type Album struct {
	// ID is the album's stable numeric identifier.
	ID string

	// Title is the album title from the page heading.
	Title string

	// Type is the release type, e.g. "Full-length".
	Type string

	// Bands lists the releasing bands in page order. Only split releases
	// have more than one entry.
	Bands []BandRef

	// ReleaseDate is the release date. Day-less dates ("March 1986") parse
	// to the first of the month.
	ReleaseDate time.Time

	// Label is the releasing label name.
	Label string

	// Duration is the total running time in seconds, 0 when the page lists
	// no durations.
	Duration int

	// Score is the average review score in percent. Nil when the album has
	// no reviews.
	Score *int

	// ReviewCount is the number of reviews. Nil when the album has none.
	ReviewCount *int

	// CoverURL is the cover art URL. Empty if the album has no cover.
	CoverURL string

	// Added is when the album entry was created, in UTC. Nil if the audit
	// trail does not carry a parsable timestamp.
	Added *time.Time

	// Modified is when the album entry was last edited, in UTC. Nil if the
	// audit trail does not carry a parsable timestamp.
	Modified *time.Time

	// Tracks is the full tracklist with disc and overall numbers assigned.
	Tracks []*Track
}

// URL returns the album's canonical relative URL.
func (a *Album) URL() string {
	return AlbumURL(a.ID)
}

// Year returns the release year.
func (a *Album) Year() int {
	return a.ReleaseDate.Year()
}

// DiscCount returns the number of distinct discs among the album's tracks.
func (a *Album) DiscCount() int {
	discs := 0
	for _, t := range a.Tracks {
		if t.DiscNumber > discs {
			discs = t.DiscNumber
		}
	}
	return discs
}

// Info returns the partial view of the album, as a discography row would
// describe it.
func (a *Album) Info() AlbumInfo {
	return AlbumInfo{
		ID:    a.ID,
		Title: a.Title,
		Type:  a.Type,
		Year:  a.Year(),
	}
}
