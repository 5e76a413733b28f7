// Package comments is responsible for the comment subresource of a post.
// Comments are embedded in their post: adding one is an atomic append to the post's
// comment sequence, never a separate insert, and listing returns the sequence in
// insertion order. New comments are also pushed to live subscribers over SSE.
package comments

import (
	"context"
	"strings"

	"github.com/user/blog-go/posts"
)

// Store is the persistence contract for embedded comments. Implementations report
// posts.ErrInvalidID for malformed post ids and posts.ErrNotFound for unknown posts.
type Store interface {
	// AppendComment adds c to the end of the post's comments in a single atomic write.
	AppendComment(ctx context.Context, postID string, c posts.Comment) error
	// Comments returns the post's comments in insertion order.
	Comments(ctx context.Context, postID string) ([]posts.Comment, error)
}

// NewCommentRequest is the body of POST /api/posts/{id}/comments.
type NewCommentRequest struct {
	Content  string `json:"content" validate:"required" example:"Great post!"`
	UserID   string `json:"userId" validate:"required" example:"665f1c2e9b1d4a0087654321"`
	Username string `json:"username" validate:"required" example:"alice"`
}

// Normalize trims surrounding whitespace from every field.
func (r *NewCommentRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	r.UserID = strings.TrimSpace(r.UserID)
	r.Username = strings.TrimSpace(r.Username)
}
