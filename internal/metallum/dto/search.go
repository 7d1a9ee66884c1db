// Package dto holds the raw JSON shapes returned by the Metal Archives
// search endpoints, before they are mapped into typed results.
package dto

// SearchResponse is the envelope of the advanced-search AJAX endpoints.
//
// Each row in AAData is a fixed-width list of cell strings; some cells are
// HTML fragments containing entity links. Which index means what depends on
// the result kind (band/album/song), not on the row itself.
type SearchResponse struct {
	// Echo mirrors the request's sEcho parameter.
	Echo int `json:"sEcho"`

	// TotalRecords is the upstream-reported total match count, which may
	// exceed the number of rows returned on this page.
	TotalRecords int `json:"iTotalRecords"`

	// TotalDisplayRecords is the number of matches on this page.
	TotalDisplayRecords int `json:"iTotalDisplayRecords"`

	// AAData holds one fixed-width cell list per result row.
	AAData [][]string `json:"aaData"`

	// Error carries the upstream error message, empty on success.
	Error string `json:"error"`
}
