package categories

import (
	"context"
	"errors"
	"time"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/cache"
	"github.com/user/blog-go/validation"
)

const listCacheField = "all"

// DefaultCategories are created by Seed when missing.
var DefaultCategories = []CreateCategoryRequest{
	{Name: "General", Description: "General posts"},
	{Name: "Technology", Description: "Posts about technology"},
	{Name: "Lifestyle", Description: "Posts about lifestyle"},
	{Name: "Travel", Description: "Posts about travel"},
	{Name: "Food", Description: "Posts about food"},
	{Name: "Sports", Description: "Posts about sports"},
}

// Service implements the category operations.
type Service struct {
	store Store
	cache cache.ICache[[]Category]
	ttl   time.Duration
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewService creates a category Service. listCache may be a disabled cache.
func NewService(store Store, listCache cache.ICache[[]Category], ttl time.Duration, log logrus.FieldLogger) *Service {
	return &Service{store: store, cache: listCache, ttl: ttl, log: log, now: time.Now}
}

// List returns all categories sorted by name, from the cache when possible.
// Cache failures are logged and fall through to the store.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	if cached, err := s.cache.Get(ctx, listCacheField); err != nil {
		s.log.WithError(err).Warn("category cache read failed")
	} else if cached != nil {
		return *cached, nil
	}

	cs, err := s.store.ListCategories(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to list categories")
		return nil, apperror.NewDatabaseError("failed to list categories", err)
	}
	if cs == nil {
		cs = []Category{}
	}
	if err := s.cache.Set(ctx, listCacheField, &cs, s.ttl); err != nil {
		s.log.WithError(err).Warn("category cache write failed")
	}
	return cs, nil
}

// Get returns one category.
func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "get")
	}
	return c, nil
}

// Create validates req and stores a new category.
func (s *Service) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	req.Normalize()
	if details := validation.Struct(req); len(details) > 0 {
		return nil, apperror.NewValidationError("Validation failed", details)
	}

	c := &Category{
		Name:        req.Name,
		Description: req.Description,
		Slug:        slug.Make(req.Name),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, apperror.NewConflictError("Category already exists", err)
		}
		return nil, s.storeError(err, "create")
	}
	s.invalidate(ctx)

	s.log.WithFields(logrus.Fields{"category_id": c.ID, "name": c.Name}).Info("category created")
	return c, nil
}

// Delete removes a category. Posts referencing it keep the dangling id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return s.storeError(err, "delete")
	}
	s.invalidate(ctx)

	s.log.WithField("category_id", id).Info("category deleted")
	return nil
}

// Seed creates the default categories that don't exist yet and reports how many
// were created. Running it twice creates nothing the second time.
func (s *Service) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, req := range DefaultCategories {
		_, err := s.Create(ctx, req)
		switch {
		case err == nil:
			created++
		case apperror.IsConflictError(err):
			s.log.WithField("name", req.Name).Debug("category already present")
		default:
			return created, err
		}
	}
	return created, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, listCacheField); err != nil {
		s.log.WithError(err).Warn("category cache invalidation failed")
	}
}

func (s *Service) storeError(err error, op string) error {
	switch {
	case errors.Is(err, ErrInvalidID):
		return apperror.NewInvalidIdentifierError("Invalid category ID", err)
	case errors.Is(err, ErrNotFound):
		return apperror.NewNotFoundError("Category not found", err)
	default:
		s.log.WithError(err).Errorf("failed to %s category", op)
		return apperror.NewDatabaseError("failed to "+op+" category", err)
	}
}
