// Package model defines the data types extracted from Metal Archives pages
// and the pure value parsers the page parsers are built on.
//
// The types are plain records: they are populated once by the parsers in
// internal/metallum and never mutated afterwards. Optional facts that may be
// absent from a page (review score, audit timestamps, artwork URLs) are
// represented as nil pointers or empty strings, never as errors.
//
// The value parsers handle the pieces of Metal Archives markup that are easy
// to get subtly wrong:
//
//   - SplitGenres splits a genre list on commas/semicolons while keeping
//     delimiters inside parenthesized qualifiers like "(early, later)" intact.
//   - ParseDuration converts "SS", "MM:SS" or "HH:MM:SS" to whole seconds.
//   - ParseReleaseDate understands both "March 3rd, 1986" and the day-less
//     "March 1986" shape.
//   - NumberTracks assigns disc and release-wide numbers across multi-disc
//     releases, detecting a disc boundary when the declared track number
//     resets to 1.
//   - SplitTitle strips the "<Band> - " prefix from split release track
//     titles.
package model
