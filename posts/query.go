package posts

import (
	"errors"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Listing defaults. MaxLimit bounds a single page so one request cannot pull the
// whole collection.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit within int64. Larger pages are past the end of any
	// collection anyway.
	MaxPage = math.MaxInt64 / MaxLimit
)

// ListParams are the effective listing parameters after parsing and defaulting.
type ListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// ParseListParams reads page, limit, search and category from a query string.
// Missing, non-numeric or non-positive page/limit values fall back to the defaults
// instead of failing the request.
func ParseListParams(q url.Values) ListParams {
	return ListParams{
		Page:     positiveOr(q.Get("page"), DefaultPage, MaxPage),
		Limit:    positiveOr(q.Get("limit"), DefaultLimit, MaxLimit),
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
	}
}

// positiveOr parses raw as a positive int. max > 0 caps the result; a positive value
// too large for int is capped the same way.
func positiveOr(raw string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && n > 0 && max > 0 {
		return max
	}
	if err != nil || n < 1 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// Filter is the predicate narrowing which posts a listing matches.
//
// A non-empty Search matches posts whose title OR content contains it as a
// case-insensitive substring (taken literally, not as a pattern). A non-empty Category
// matches posts whose category equals it exactly. When both are set both must hold;
// when neither is set every post matches.
type Filter struct {
	Search   string
	Category string
}

// IsEmpty reports whether the filter matches everything.
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.Category == ""
}

// Matches is the reference implementation of the filter. Stores that translate the
// filter into a native query must agree with it.
func (f Filter) Matches(p Post) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Content), needle) {
			return false
		}
	}
	return true
}

// ListQuery is the plan a store executes for one page of a listing.
// The sort order is fixed: createdAt descending, ties in insertion order.
type ListQuery struct {
	Filter Filter
	Skip   int64
	Limit  int64
}

// BuildListQuery turns effective parameters into a filter plus skip/limit. Page and
// limit are clamped again so params built by hand cannot overflow the skip.
func BuildListQuery(p ListParams) ListQuery {
	page := int64(p.Page)
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	limit := int64(p.Limit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return ListQuery{
		Filter: Filter{Search: p.Search, Category: p.Category},
		Skip:   (page - 1) * limit,
		Limit:  limit,
	}
}

// SortNewestFirst orders posts by createdAt descending. The sort is stable, so posts
// given in insertion order keep that order among equal timestamps.
func SortNewestFirst(ps []Post) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].CreatedAt.After(ps[j].CreatedAt)
	})
}

// Window returns the [skip, skip+limit) slice of ps, or an empty slice when skip is
// past the end.
func Window(ps []Post, skip, limit int64) []Post {
	n := int64(len(ps))
	if skip < 0 || skip >= n || limit < 1 {
		return []Post{}
	}
	end := n
	if limit < n-skip {
		end = skip + limit
	}
	return ps[skip:end]
}
