package memstore

import (
	"context"
	"sort"

	"github.com/user/blog-go/categories"
)

// ListCategories returns every category ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]categories.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]categories.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetCategory returns one category.
func (s *Store) GetCategory(ctx context.Context, id string) (*categories.Category, error) {
	if !parseID(id) {
		return nil, categories.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, categories.ErrNotFound
}

// CreateCategory stores c, rejecting duplicate names.
func (s *Store) CreateCategory(ctx context.Context, c *categories.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return categories.ErrDuplicateName
		}
	}
	c.ID = newID()
	cp := *c
	s.categories = append(s.categories, &cp)
	return nil
}

// DeleteCategory removes a category.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if !parseID(id) {
		return categories.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return categories.ErrNotFound
}
