package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SplitGenres splits a delimited genre string into independent phrases.
//
// The delimiter is a comma or semicolon followed by optional whitespace, but
// a delimiter inside a parenthesized qualifier must not split:
//
//	SplitGenres("Thrash Metal (early), Hard Rock/Heavy/Thrash Metal (later)")
//	// ["Thrash Metal (early)", "Hard Rock/Heavy/Thrash Metal (later)"]
//
//	SplitGenres("Heavy Metal/Hard Rock (early, later), Thrash Metal (mid)")
//	// ["Heavy Metal/Hard Rock (early, later)", "Thrash Metal (mid)"]
//
//	SplitGenres("Deathcore (early); Melodic Death/Groove Metal")
//	// ["Deathcore (early)", "Melodic Death/Groove Metal"]
func SplitGenres(s string) []string {
	var phrases []string
	depth := 0
	start := 0
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',', ';':
			if depth != 0 {
				continue
			}
			phrases = append(phrases, string(runes[start:i]))
			// Swallow the whitespace after the delimiter.
			i++
			for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t') {
				i++
			}
			start = i
			i--
		}
	}
	phrases = append(phrases, string(runes[start:]))
	return phrases
}

// ParseDuration converts a "SS", "MM:SS" or "HH:MM:SS" string to whole
// seconds. The rightmost group is seconds, the next minutes, and the leftmost
// (present only with three groups) hours.
//
//	ParseDuration("00:01")    // 1
//	ParseDuration("03:33")    // 213
//	ParseDuration("01:14:00") // 4440
func ParseDuration(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("duration %q: too many groups", s)
	}
	seconds := 0
	multipliers := []int{1, 60, 3600}
	for i := 0; i < len(parts); i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1-i]))
		if err != nil {
			return 0, fmt.Errorf("duration %q: %w", s, err)
		}
		seconds += n * multipliers[i]
	}
	return seconds, nil
}

var ordinalSuffix = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)`)

// ParseReleaseDate parses a release date as printed on an album page.
//
// Two shapes occur: "Month Year" (no day component, recognized by the
// absence of a day-separating comma) and a fully qualified date with an
// ordinal day, e.g. "March 3rd, 1986". A bare year is also accepted.
func ParseReleaseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	// Date has no day portion.
	if len(s) > 4 && !strings.Contains(s, ",") {
		return time.Parse("January 2006", s)
	}

	clean := ordinalSuffix.ReplaceAllString(s, "$1")
	for _, layout := range []string{"January 2, 2006", "2006"} {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized release date %q", s)
}
