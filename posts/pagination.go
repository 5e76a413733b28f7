package posts

// Pagination is the page metadata of a listing. It always describes the full matching
// set, not just the returned page.
type Pagination struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	TotalPosts  int64 `json:"totalPosts" example:"25"`
	HasNext     bool  `json:"hasNext" example:"true"`
	HasPrev     bool  `json:"hasPrev" example:"false"`
}

// Filters echoes the effective search and category used for a listing.
type Filters struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// ListResponse is the pagination envelope returned by GET /api/posts.
type ListResponse struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
	Filters    Filters    `json:"filters"`
}

// TotalPages is ceil(total/limit), and 0 when nothing matches.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// AssemblePage builds the envelope from one page of posts and the total number of
// posts matching the filter (ignoring skip/limit).
func AssemblePage(page []Post, total int64, p ListParams) *ListResponse {
	if page == nil {
		page = []Post{}
	}
	totalPages := TotalPages(total, p.Limit)
	return &ListResponse{
		Posts: page,
		Pagination: Pagination{
			CurrentPage: p.Page,
			TotalPages:  totalPages,
			TotalPosts:  total,
			HasNext:     p.Page < totalPages,
			HasPrev:     p.Page > 1,
		},
		Filters: Filters{Search: p.Search, Category: p.Category},
	}
}
