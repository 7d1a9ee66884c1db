package model

// Lyrics is the plain text of one song's lyrics, with paragraph breaks
// preserved as newlines. The empty string means the song has no lyrics on
// record (or is instrumental).
type Lyrics string

// Empty reports whether no lyrics are on record.
func (l Lyrics) Empty() bool { return l == "" }

func (l Lyrics) String() string { return string(l) }
