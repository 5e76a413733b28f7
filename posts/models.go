// Package posts is responsible for blog posts: the listing/query pipeline
// (filtering, sorting, pagination), the response envelope, and the CRUD operations.
// Comments are embedded in posts but managed by the `comments` package.
package posts

import (
	"strings"
	"time"
)

// Comment is a reply embedded in a post's comment sequence.
// It is not a standalone entity: it has no id and only exists inside its post.
// The struct carries `bson` tags for the document store and `json` tags for both the
// API and the JSONB column of the relational store.
type Comment struct {
	User string `json:"user" bson:"user"`
	// Username is captured when the comment is written and never re-synced.
	Username  string    `json:"username" bson:"username"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Post is a blog entry.
// Comments are always kept in insertion order, so the newest comment is the last element.
type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// Category references a category id. Empty means "no category"; nothing guarantees
	// the referenced category still exists.
	Category      string    `json:"category"`
	Author        string    `json:"author"`
	FeaturedImage string    `json:"featuredImage,omitempty"`
	Slug          string    `json:"slug,omitempty"`
	Comments      []Comment `json:"comments"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Title         string `json:"title" validate:"required,max=200" example:"Hello World"`
	Content       string `json:"content" validate:"required" example:"My first post"`
	Category      string `json:"category,omitempty" example:"665f1c2e9b1d4a0012345678"`
	Author        string `json:"author" validate:"required" example:"665f1c2e9b1d4a0087654321"`
	FeaturedImage string `json:"featuredImage,omitempty" example:"/uploads/V1StGXR8_Z5jdHi6B.png"`
}

// Normalize trims surrounding whitespace from every field.
func (r *CreatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Category = strings.TrimSpace(r.Category)
	r.Author = strings.TrimSpace(r.Author)
	r.FeaturedImage = strings.TrimSpace(r.FeaturedImage)
}

// UpdatePostRequest is the body of PUT /api/posts/{id}.
// Pointer fields allow partial updates: nil means "leave unchanged", while a pointer to
// an empty string clears optional fields (category, featuredImage).
type UpdatePostRequest struct {
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	Category      *string `json:"category,omitempty"`
	Author        *string `json:"author,omitempty"`
	FeaturedImage *string `json:"featuredImage,omitempty"`
}

// Patch is the store-level description of an update. Only non-nil fields are written;
// UpdatedAt is always written.
type Patch struct {
	Title         *string
	Content       *string
	Category      *string
	Author        *string
	FeaturedImage *string
	Slug          *string
	UpdatedAt     time.Time
}

// Apply writes the patch onto p. Stores without native partial updates use it.
func (pt Patch) Apply(p *Post) {
	if pt.Title != nil {
		p.Title = *pt.Title
	}
	if pt.Content != nil {
		p.Content = *pt.Content
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.Author != nil {
		p.Author = *pt.Author
	}
	if pt.FeaturedImage != nil {
		p.FeaturedImage = *pt.FeaturedImage
	}
	if pt.Slug != nil {
		p.Slug = *pt.Slug
	}
	p.UpdatedAt = pt.UpdatedAt
}

// DeletePostResponse is the body returned by DELETE /api/posts/{id}.
type DeletePostResponse struct {
	Message     string `json:"message" example:"Post deleted successfully"`
	DeletedPost *Post  `json:"deletedPost"`
}
