package metallum

import (
	"errors"
	"fmt"
)

// ErrNoSuchAttribute is returned (wrapped) by collection filters when a
// constraint names a field the contained items do not have.
var ErrNoSuchAttribute = errors.New("no such attribute")

// ParseError reports that a fetched page's overall shape did not match what
// the parser expects: the upstream layout changed, or the requested id does
// not exist. It is distinct from a fetch error so callers can tell "network
// problem" from "this page is not what we expect".
type ParseError struct {
	// Endpoint is the relative URL of the offending page.
	Endpoint string

	// Reason describes the missing or malformed structure.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Endpoint, e.Reason)
}
