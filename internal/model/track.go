package model

import "strings"

// Track represents a single track within a release.
type Track struct {
	// ID is the track's identifier used by the lyrics endpoint, e.g. "5018A".
	ID string

	// Number is the track number as declared on the page, counted within
	// its disc.
	Number int

	// OverallNumber is the release-wide sequential number, assigned by
	// NumberTracks.
	OverallNumber int

	// DiscNumber is the disc this track belongs to, assigned by
	// NumberTracks.
	DiscNumber int

	// FullTitle is the raw title cell text. On split releases it carries a
	// "<Band> - " prefix.
	FullTitle string

	// Title is the bare track title with any split-release band prefix
	// removed.
	Title string

	// Duration is the track length in seconds, 0 when the page lists none.
	Duration int

	// Band is the band this track belongs to. On non-split releases this is
	// the releasing band; on splits it is the band named in FullTitle.
	Band BandRef

	// HasLyrics reports whether the row links to instrumental-free lyrics.
	HasLyrics bool
}

// NumberTracks assigns disc and overall numbers to an ordered tracklist.
//
// The first row is disc 1. A subsequent row whose declared in-disc number
// resets to 1 starts a new disc; every other row stays on the current disc.
// The overall number always increments by exactly one per row, regardless of
// disc boundaries.
//
// A release that numbers its tracks continuously across discs collapses to a
// single disc: the declared-number reset is the only boundary signal the page
// provides.
func NumberTracks(tracks []*Track) {
	disc := 1
	for i, t := range tracks {
		if i != 0 && t.Number == 1 {
			disc++
		}
		t.DiscNumber = disc
		t.OverallNumber = i + 1
	}
}

// SplitTitle resolves a split-release track title against the release's
// bands. Bands are tested in release order; the first whose name starts the
// raw title is the track's owner, and the "<Band> - " prefix is stripped.
//
// When no band name matches, the title is returned unchanged and ok is false.
//
// Example:
//
//	SplitTitle("Lunar Aurora - A haudiga Fluag", []string{"Lunar Aurora", "Paysage d'Hiver"})
//	// owner = "Lunar Aurora", title = "A haudiga Fluag", ok = true
func SplitTitle(fullTitle string, bands []string) (owner, title string, ok bool) {
	for _, name := range bands {
		if strings.HasPrefix(fullTitle, name+" - ") {
			return name, fullTitle[len(name)+3:], true
		}
	}
	return "", fullTitle, false
}
