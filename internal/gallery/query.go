// Package gallery implements the paginated gallery view-state
// machine: the authoritative query parameters, the request generation
// guard against out-of-order responses, and the pagination window
// rule.
package gallery

import (
	"net/url"
	"strconv"

	"github.com/snapfest/gallery/internal/media"
)

// Filter selects which subset of the gallery is requested. The
// backend encodes "featured" and the type filters with different
// query parameters, so exactly one of them is ever sent.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterFeatured Filter = "featured"
	FilterImages   Filter = "images"
	FilterVideos   Filter = "videos"
)

// ParseFilter maps a config string onto a Filter, defaulting to all.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterFeatured, FilterImages, FilterVideos:
		return Filter(s)
	}
	return FilterAll
}

// Query holds the authoritative query parameters for the gallery
// list. Page is 0-based. Mutations that change which items match
// (search, filter, page size) reset Page to 0.
type Query struct {
	SearchTerm string
	Filter     Filter
	Page       int
	PageSize   int
	Sort       string // field,direction e.g. "date,desc"
}

// SetSearch updates the settled search term and resets to page 0.
func (q *Query) SetSearch(term string) {
	if q.SearchTerm == term {
		return
	}
	q.SearchTerm = term
	q.Page = 0
}

// SetFilter updates the filter and resets to page 0.
func (q *Query) SetFilter(f Filter) {
	if q.Filter == f {
		return
	}
	q.Filter = f
	q.Page = 0
}

// SetPageSize updates the page size and resets to page 0.
func (q *Query) SetPageSize(size int) {
	if size <= 0 || q.PageSize == size {
		return
	}
	q.PageSize = size
	q.Page = 0
}

// SetPage requests a specific page. Out-of-range targets are ignored;
// totalPages <= 0 means the total is unknown and only the lower bound
// is checked.
func (q *Query) SetPage(page, totalPages int) bool {
	if page < 0 {
		return false
	}
	if totalPages > 0 && page >= totalPages {
		return false
	}
	q.Page = page
	return true
}

// Params derives the request query parameters. featured and type are
// mutually exclusive encodings selected by the filter.
func (q Query) Params() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.PageSize))
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.SearchTerm != "" {
		v.Set("search", q.SearchTerm)
	}
	switch q.Filter {
	case FilterFeatured:
		v.Set("featured", "true")
	case FilterImages:
		v.Set("type", "image")
	case FilterVideos:
		v.Set("type", "video")
	}
	return v
}

// PageResult is one fetched page of gallery items plus totals.
// Invariant: PageIndex < TotalPages whenever TotalElements > 0.
type PageResult struct {
	Items         []media.Item
	PageIndex     int
	PageSize      int
	TotalPages    int
	TotalElements int
}

// RangeSummary returns the 1-based "first-last of total" bounds for
// the current page, for the pagination bar.
func (p PageResult) RangeSummary() (first, last, total int) {
	total = p.TotalElements
	if total == 0 || len(p.Items) == 0 {
		return 0, 0, total
	}
	first = p.PageIndex*p.PageSize + 1
	last = first + len(p.Items) - 1
	return first, last, total
}

// Session pairs the query state with a request generation counter so
// that responses arriving out of order are never applied over newer
// ones: only the result tagged with the latest generation is accepted.
type Session struct {
	Query Query

	gen      uint64
	accepted uint64
}

// NewSession creates a Session with the given initial query.
func NewSession(q Query) *Session {
	return &Session{Query: q}
}

// Next stamps the current query with a fresh generation. Every fetch
// must go through Next so a later query invalidates it.
func (s *Session) Next() (Query, uint64) {
	s.gen++
	return s.Query, s.gen
}

// Current reports whether gen is the latest issued generation.
func (s *Session) Current(gen uint64) bool {
	return gen == s.gen
}

// Accept records a completed fetch. It returns false for stale
// responses, which callers must discard.
func (s *Session) Accept(gen uint64) bool {
	if gen != s.gen {
		return false
	}
	s.accepted = gen
	return true
}
