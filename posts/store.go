package posts

import (
	"context"
	"errors"
)

// Errors every Store implementation reports in its own terms.
var (
	// ErrNotFound means the id is well-formed but resolves to no post.
	ErrNotFound = errors.New("post not found")
	// ErrInvalidID means the id is malformed for the store's identifier format.
	ErrInvalidID = errors.New("invalid post id")
)

// Store is the persistence contract for posts. Implementations live in `mongostore`,
// `pgstore` and `memstore`; the store handle is created once in main and passed in.
type Store interface {
	// Find returns one page of posts matching q.Filter, newest first.
	Find(ctx context.Context, q ListQuery) ([]Post, error)
	// Count returns how many posts match f, ignoring any paging.
	Count(ctx context.Context, f Filter) (int64, error)
	Get(ctx context.Context, id string) (*Post, error)
	// Create stores p and assigns p.ID.
	Create(ctx context.Context, p *Post) error
	// Update applies patch and returns the post as stored afterwards.
	Update(ctx context.Context, id string, patch Patch) (*Post, error)
	// Delete removes the post (and with it its comments) and returns what was removed.
	Delete(ctx context.Context, id string) (*Post, error)
}
