package model

import (
	"fmt"
	"time"
)

// BandRef is a lightweight reference to a band: just enough to identify it
// and build its canonical URL without fetching its page.
type BandRef struct {
	// ID is the band's stable numeric identifier, e.g. "125".
	ID string

	// Name is the band name as printed on the referencing page.
	Name string
}

// URL returns the canonical relative URL for the referenced band.
//
// Example:
//
//	BandRef{ID: "125"}.URL() // "bands/_/125"
func (r BandRef) URL() string {
	return fmt.Sprintf("bands/_/%s", r.ID)
}

// Band holds every fact extracted from a band's own page.
//
// Two Band values with equal IDs describe the same real-world band no matter
// how they were obtained (direct fetch, search result resolution, album
// cross-reference).
type Band struct {
	// ID is the band's stable numeric identifier.
	ID string

	// Name is the band name from the page heading.
	Name string

	// Country is the country of origin, e.g. "United States".
	Country string

	// Location is the city/region line, e.g. "Los Angeles, California".
	Location string

	// Status is the band status, e.g. "Active" or "Split-up".
	Status string

	// FormedIn is the formation year as printed, e.g. "1981".
	FormedIn string

	// Genres is the genre list split into independent phrases.
	Genres []string

	// Themes is the lyrical themes list.
	Themes []string

	// Label is the current label name.
	Label string

	// LogoURL is the band logo image URL. Empty if the band has no logo.
	LogoURL string

	// PhotoURL is the band photo image URL. Empty if the band has no photo.
	PhotoURL string

	// Added is when the band entry was created, in UTC.
	// Nil if the audit trail does not carry a parsable timestamp.
	Added *time.Time

	// Modified is when the band entry was last edited, in UTC.
	// Nil if the audit trail does not carry a parsable timestamp.
	Modified *time.Time
}

// URL returns the band's canonical relative URL.
func (b *Band) URL() string {
	return BandRef{ID: b.ID}.URL()
}

// SimilarArtist is one row from a band's similar-artists tab.
type SimilarArtist struct {
	// ID is the recommended band's numeric identifier.
	ID string

	// Name is the recommended band's name.
	Name string

	// Country is the recommended band's country of origin.
	Country string

	// Genres is the recommended band's genre list.
	Genres []string

	// Score is the community similarity score.
	Score int
}

// URL returns the recommended band's canonical relative URL.
func (s SimilarArtist) URL() string {
	return BandRef{ID: s.ID}.URL()
}
