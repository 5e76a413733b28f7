package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/user/blog-go/categories"
)

const categoryColumns = `id::text, name, description, slug, created_at`

func scanCategory(row pgx.Row) (*categories.Category, error) {
	var c categories.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns every category ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]categories.Category, error) {
	rows, err := s.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	out := []categories.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// GetCategory returns one category.
func (s *Store) GetCategory(ctx context.Context, id string) (*categories.Category, error) {
	if !validID(id) {
		return nil, categories.ErrInvalidID
	}
	c, err := scanCategory(s.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, categories.ErrNotFound
		}
		return nil, fmt.Errorf("category lookup failed: %w", err)
	}
	return c, nil
}

// CreateCategory inserts c and assigns c.ID.
func (s *Store) CreateCategory(ctx context.Context, c *categories.Category) error {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx,
		`INSERT INTO categories (id, name, description, slug, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, c.Name, c.Description, c.Slug, c.CreatedAt)
	if err != nil {
		if uniqueViolation(err) != "" {
			return categories.ErrDuplicateName
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	c.ID = id
	return nil
}

// DeleteCategory removes a category.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if !validID(id) {
		return categories.ErrInvalidID
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return categories.ErrNotFound
	}
	return nil
}
