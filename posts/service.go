package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/validation"
)

// Service defines the post operations the HTTP layer depends on.
// Handlers depend on this interface rather than the concrete implementation, which
// keeps them testable.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResponse, error)
	Get(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, id string, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id string) (*Post, error)
}

// postServiceImpl is the implementation of Service over a Store.
type postServiceImpl struct {
	store Store
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewPostService creates a new post Service.
func NewPostService(store Store, log logrus.FieldLogger) Service {
	return &postServiceImpl{store: store, log: log, now: time.Now}
}

const maxTitleLength = 200

// List runs the listing pipeline: build the query, fetch the page and the total
// count for the same filter, then assemble the envelope.
func (s *postServiceImpl) List(ctx context.Context, params ListParams) (*ListResponse, error) {
	q := BuildListQuery(params)

	var (
		page  []Post
		total int64
	)
	// The page and the count are independent reads, so they run concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.store.Find(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.store.Count(gctx, q.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"search":   params.Search,
			"category": params.Category,
			"page":     params.Page,
		}).Error("failed to list posts")
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}

	for i := range page {
		normalizeComments(&page[i])
	}
	return AssemblePage(page, total, params), nil
}

// Get returns a single post.
func (s *postServiceImpl) Get(ctx context.Context, id string) (*Post, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "get", id)
	}
	normalizeComments(p)
	return p, nil
}

// Create validates the request and stores a new post.
func (s *postServiceImpl) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	req.Normalize()
	if details := validation.Struct(req); len(details) > 0 {
		return nil, apperror.NewValidationError("Validation failed", details)
	}

	now := s.now().UTC()
	p := &Post{
		Title:         req.Title,
		Content:       req.Content,
		Category:      req.Category,
		Author:        req.Author,
		FeaturedImage: req.FeaturedImage,
		Slug:          slug.Make(req.Title),
		Comments:      []Comment{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		s.log.WithError(err).Error("failed to create post")
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}

	s.log.WithFields(logrus.Fields{"post_id": p.ID, "author": p.Author}).Info("post created")
	return p, nil
}

// Update applies a partial update. Provided fields are re-validated, the slug follows
// the title, and updatedAt is refreshed even when no field changes.
func (s *postServiceImpl) Update(ctx context.Context, id string, req UpdatePostRequest) (*Post, error) {
	patch, details := buildPatch(req)
	if len(details) > 0 {
		return nil, apperror.NewValidationError("Validation failed", details)
	}
	patch.UpdatedAt = s.now().UTC()

	p, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, s.storeError(err, "update", id)
	}
	normalizeComments(p)

	s.log.WithField("post_id", id).Info("post updated")
	return p, nil
}

// Delete removes a post and returns it.
func (s *postServiceImpl) Delete(ctx context.Context, id string) (*Post, error) {
	p, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "delete", id)
	}
	normalizeComments(p)

	s.log.WithFields(logrus.Fields{"post_id": id, "comments": len(p.Comments)}).Info("post deleted")
	return p, nil
}

// buildPatch trims and checks the provided fields of req.
func buildPatch(req UpdatePostRequest) (Patch, []string) {
	var (
		patch   Patch
		details []string
	)
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}

	patch.Title = trim(req.Title)
	patch.Content = trim(req.Content)
	patch.Category = trim(req.Category)
	patch.Author = trim(req.Author)
	patch.FeaturedImage = trim(req.FeaturedImage)

	if patch.Title != nil {
		switch {
		case *patch.Title == "":
			details = append(details, "title is required")
		case len([]rune(*patch.Title)) > maxTitleLength:
			details = append(details, fmt.Sprintf("title must be at most %d characters", maxTitleLength))
		default:
			sl := slug.Make(*patch.Title)
			patch.Slug = &sl
		}
	}
	if patch.Content != nil && *patch.Content == "" {
		details = append(details, "content is required")
	}
	if patch.Author != nil && *patch.Author == "" {
		details = append(details, "author is required")
	}
	return patch, details
}

// storeError translates store sentinels into the application taxonomy.
func (s *postServiceImpl) storeError(err error, op, id string) error {
	switch {
	case errors.Is(err, ErrInvalidID):
		return apperror.NewInvalidIdentifierError("Invalid post ID", err)
	case errors.Is(err, ErrNotFound):
		return apperror.NewNotFoundError("Post not found", err)
	default:
		s.log.WithError(err).WithField("post_id", id).Errorf("failed to %s post", op)
		return apperror.NewDatabaseError(fmt.Sprintf("failed to %s post", op), err)
	}
}

// normalizeComments makes sure comments serialize as [] rather than null.
func normalizeComments(p *Post) {
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}
