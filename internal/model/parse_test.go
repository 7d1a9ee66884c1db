package model

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestSplitGenres(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "comma separator",
			input: "Thrash Metal (early), Hard Rock/Heavy/Thrash Metal (later)",
			want:  []string{"Thrash Metal (early)", "Hard Rock/Heavy/Thrash Metal (later)"},
		},
		{
			name:  "semicolon separator",
			input: "Deathcore (early); Melodic Death/Groove Metal",
			want:  []string{"Deathcore (early)", "Melodic Death/Groove Metal"},
		},
		{
			name:  "no delimiter",
			input: "Heavy Metal",
			want:  []string{"Heavy Metal"},
		},
		{
			name:  "comma within parentheses",
			input: "Heavy Metal/Hard Rock (early, later), Thrash Metal (mid)",
			want:  []string{"Heavy Metal/Hard Rock (early, later)", "Thrash Metal (mid)"},
		},
		{
			name:  "three phrases",
			input: "Thrash Metal (early), Hard Rock (mid), Heavy/Thrash Metal (later)",
			want:  []string{"Thrash Metal (early)", "Hard Rock (mid)", "Heavy/Thrash Metal (later)"},
		},
		{
			name:  "mixed delimiters",
			input: "Black Metal (early); Ambient (later), Noise",
			want:  []string{"Black Metal (early)", "Ambient (later)", "Noise"},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitGenres(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitGenres(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Every output phrase must have balanced parentheses, and the phrase count
// must equal one plus the number of top-level delimiters.
func TestSplitGenres_Balance(t *testing.T) {
	inputs := []string{
		"Thrash Metal (early), Hard Rock/Heavy/Thrash Metal (later)",
		"Heavy Metal/Hard Rock (early, later), Thrash Metal (mid)",
		"Progressive Metal (early); Djent (mid, later); Post-Rock",
		"Doom Metal",
	}
	for _, input := range inputs {
		phrases := SplitGenres(input)

		topLevel := 0
		depth := 0
		for _, r := range input {
			switch r {
			case '(':
				depth++
			case ')':
				depth--
			case ',', ';':
				if depth == 0 {
					topLevel++
				}
			}
		}
		if len(phrases) != topLevel+1 {
			t.Errorf("SplitGenres(%q): got %d phrases, want %d", input, len(phrases), topLevel+1)
		}

		for _, p := range phrases {
			if strings.Count(p, "(") != strings.Count(p, ")") {
				t.Errorf("SplitGenres(%q): unbalanced phrase %q", input, p)
			}
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"00:01", 1},
		{"03:33", 213},
		{"01:14:00", 4440},
		{"42", 42},
		{"0:59", 59},
		{"10:00:00", 36000},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if err != nil {
				t.Fatalf("ParseDuration(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, input := range []string{"", "ab:cd", "1:2:3:4"} {
		if _, err := ParseDuration(input); err == nil {
			t.Errorf("ParseDuration(%q): expected error", input)
		}
	}
}

func TestParseReleaseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"March 3rd, 1986", time.Date(1986, 3, 3, 0, 0, 0, 0, time.UTC)},
		{"October 1st, 1990", time.Date(1990, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"August 22nd, 2003", time.Date(2003, 8, 22, 0, 0, 0, 0, time.UTC)},
		{"June 15th, 2012", time.Date(2012, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"March 1986", time.Date(1986, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"1986", time.Date(1986, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReleaseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseReleaseDate(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseReleaseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if _, err := ParseReleaseDate("sometime soon"); err == nil {
		t.Error("ParseReleaseDate: expected error for unrecognized input")
	}
}
