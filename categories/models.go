// Package categories manages the named groupings posts may reference.
// Posts hold a category id but nothing enforces it: deleting a category leaves the
// posts that reference it untouched.
package categories

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Category is a named grouping of posts.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateCategoryRequest is the body of POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=50" example:"Technology"`
	Description string `json:"description,omitempty" validate:"max=500" example:"Posts about technology"`
}

// Normalize trims surrounding whitespace.
func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// Errors reported by Store implementations.
var (
	ErrNotFound      = errors.New("category not found")
	ErrInvalidID     = errors.New("invalid category id")
	ErrDuplicateName = errors.New("category name already exists")
)

// Store is the persistence contract for categories.
type Store interface {
	// ListCategories returns every category ordered by name.
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	// CreateCategory stores c and assigns c.ID. Names are unique (exact match).
	CreateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error
}
