package book

import "strings"

// DefaultPerPage is the page size used when the caller supplies none or an
// unusable value.
const DefaultPerPage = 10

const maxPerPage = 100

// sortFields is the whitelist of sortable columns. Anything else silently
// falls back to id.
var sortFields = map[string]bool{
	"id":               true,
	"title":            true,
	"author":           true,
	"publication_year": true,
	"created_at":       true,
	"updated_at":       true,
}

// ListQuery carries the listing parameters as the caller sent them.
// Normalized applies the query contract before they reach the store.
type ListQuery struct {
	SortField     string
	SortDirection string
	Page          int
	PerPage       int
}

// Normalized coerces the query into its canonical form: whitelisted sort
// field (fallback id), asc/desc direction where only a case-insensitive
// "desc" yields desc, and defaulted pagination. Bad values never error.
func (q ListQuery) Normalized() ListQuery {
	if !sortFields[q.SortField] {
		q.SortField = "id"
	}
	if strings.EqualFold(q.SortDirection, "desc") {
		q.SortDirection = "desc"
	} else {
		q.SortDirection = "asc"
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	} else if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
