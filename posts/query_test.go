package posts

import (
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  ListParams
	}{
		{"defaults", "", ListParams{Page: 1, Limit: 10}},
		{"explicit", "page=3&limit=5", ListParams{Page: 3, Limit: 5}},
		{"non-numeric falls back", "page=abc&limit=x", ListParams{Page: 1, Limit: 10}},
		{"zero and negative fall back", "page=0&limit=-4", ListParams{Page: 1, Limit: 10}},
		{"limit capped", "limit=1000", ListParams{Page: 1, Limit: MaxLimit}},
		{"search and category trimmed", "search=%20Go%20&category=%20c1%20", ListParams{Page: 1, Limit: 10, Search: "Go", Category: "c1"}},
		{"empty category means none", "category=", ListParams{Page: 1, Limit: 10}},
		{"huge page capped", "page=1000000000000000000", ListParams{Page: MaxPage, Limit: 10}},
		{"page beyond int range capped", "page=99999999999999999999999", ListParams{Page: MaxPage, Limit: 10}},
		{"negative beyond int range falls back", "page=-99999999999999999999999", ListParams{Page: 1, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ParseListParams(q))
		})
	}
}

func TestBuildListQuerySkip(t *testing.T) {
	q := BuildListQuery(ListParams{Page: 3, Limit: 7, Search: "s", Category: "c"})
	assert.Equal(t, int64(14), q.Skip)
	assert.Equal(t, int64(7), q.Limit)
	assert.Equal(t, Filter{Search: "s", Category: "c"}, q.Filter)
}

func TestBuildListQueryNeverOverflows(t *testing.T) {
	for _, page := range []int{MaxPage, MaxPage + 1, math.MaxInt} {
		q := BuildListQuery(ListParams{Page: page, Limit: MaxLimit})
		assert.Positive(t, q.Skip, "page %d", page)
		assert.Equal(t, int64(MaxPage-1)*MaxLimit, q.Skip)
	}

	q := BuildListQuery(ListParams{Page: 0, Limit: 0})
	assert.Equal(t, int64(0), q.Skip)
	assert.Equal(t, int64(DefaultLimit), q.Limit)
}

func TestFilterMatches(t *testing.T) {
	p := Post{Title: "Learning Go", Content: "Channels and goroutines", Category: "C1"}

	assert.True(t, Filter{}.Matches(p))
	assert.True(t, Filter{Search: "learning"}.Matches(p))
	assert.True(t, Filter{Search: "GOROUTINE"}.Matches(p), "content is searched too")
	assert.False(t, Filter{Search: "rust"}.Matches(p))
	assert.True(t, Filter{Category: "C1"}.Matches(p))
	assert.False(t, Filter{Category: "C12"}.Matches(Post{Category: "C1"}))
	assert.False(t, Filter{Category: "C1"}.Matches(Post{Category: "C12"}))
	assert.False(t, Filter{Search: "go", Category: "C2"}.Matches(p), "both conditions must hold")
	assert.True(t, Filter{Search: ".*"}.Matches(Post{Title: "regex .* literal"}))
	assert.False(t, Filter{Search: ".*"}.Matches(Post{Title: "anything"}), "search is literal")
}

func TestSortNewestFirstIsStable(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ps := []Post{
		{ID: "a", CreatedAt: t0},
		{ID: "b", CreatedAt: t0.Add(time.Hour)},
		{ID: "c", CreatedAt: t0},
	}
	SortNewestFirst(ps)
	assert.Equal(t, []string{"b", "a", "c"}, ids(ps))
}

func TestWindow(t *testing.T) {
	ps := []Post{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	assert.Equal(t, []string{"1", "2"}, ids(Window(ps, 0, 2)))
	assert.Equal(t, []string{"3"}, ids(Window(ps, 2, 2)))
	assert.Empty(t, Window(ps, 3, 2))
	assert.NotNil(t, Window(ps, 10, 2))
	assert.Empty(t, Window(ps, -5, 2))
	assert.Equal(t, []string{"2", "3"}, ids(Window(ps, 1, math.MaxInt64)))
	assert.Empty(t, Window(ps, math.MaxInt64, math.MaxInt64))
}

func ids(ps []Post) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
