package comments

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/events"
	"github.com/user/blog-go/posts"
	"github.com/user/blog-go/validation"
)

// EventCommentCreated is the SSE event type sent when a comment is added.
const EventCommentCreated = "comment.created"

// CommentService defines the comment operations the HTTP layer depends on.
type CommentService interface {
	AddComment(ctx context.Context, postID string, req NewCommentRequest) (*posts.Comment, error)
	ListComments(ctx context.Context, postID string) ([]posts.Comment, error)
}

// Publisher is the part of the events.Broadcaster the service needs.
type Publisher interface {
	Publish(topic string, event events.SSEEvent) int
}

// commentServiceImpl is an implementation of CommentService.
type commentServiceImpl struct {
	store     Store
	publisher Publisher
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewCommentService creates a new CommentService. publisher may be nil.
func NewCommentService(store Store, publisher Publisher, log logrus.FieldLogger) CommentService {
	return &commentServiceImpl{store: store, publisher: publisher, log: log, now: time.Now}
}

// AddComment validates req, appends the comment to the post and returns it.
// A rejected body never reaches the append, so it cannot mutate the post. Post id
// errors take precedence over body errors: a malformed or unknown id is reported as
// such even when the body is also invalid.
func (s *commentServiceImpl) AddComment(ctx context.Context, postID string, req NewCommentRequest) (*posts.Comment, error) {
	req.Normalize()
	if details := validation.Struct(req); len(details) > 0 {
		if _, err := s.store.Comments(ctx, postID); err != nil {
			return nil, s.storeError(err, "add comment to", postID)
		}
		return nil, apperror.NewValidationError("Validation failed", details)
	}

	c := posts.Comment{
		User:      req.UserID,
		Username:  req.Username,
		Content:   req.Content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.AppendComment(ctx, postID, c); err != nil {
		return nil, s.storeError(err, "add comment to", postID)
	}

	s.log.WithFields(logrus.Fields{"post_id": postID, "user_id": c.User}).Info("comment added")
	s.publish(postID, c)
	return &c, nil
}

// ListComments returns the post's comments, oldest first.
func (s *commentServiceImpl) ListComments(ctx context.Context, postID string) ([]posts.Comment, error) {
	cs, err := s.store.Comments(ctx, postID)
	if err != nil {
		return nil, s.storeError(err, "list comments of", postID)
	}
	if cs == nil {
		cs = []posts.Comment{}
	}
	return cs, nil
}

func (s *commentServiceImpl) publish(postID string, c posts.Comment) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(c)
	if err != nil {
		s.log.WithError(err).Warn("failed to encode comment event")
		return
	}
	s.publisher.Publish(postID, events.NewSSEEvent(EventCommentCreated, string(data)))
}

func (s *commentServiceImpl) storeError(err error, op, postID string) error {
	switch {
	case errors.Is(err, posts.ErrInvalidID):
		return apperror.NewInvalidIdentifierError("Invalid post ID", err)
	case errors.Is(err, posts.ErrNotFound):
		return apperror.NewNotFoundError("Post not found", err)
	default:
		s.log.WithError(err).WithField("post_id", postID).Errorf("failed to %s post", op)
		return apperror.NewDatabaseError("failed to "+op+" post", err)
	}
}
