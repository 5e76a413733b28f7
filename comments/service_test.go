package comments_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/comments"
	"github.com/user/blog-go/events"
	"github.com/user/blog-go/memstore"
	"github.com/user/blog-go/posts"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []events.SSEEvent
}

func (p *recordingPublisher) Publish(topic string, ev events.SSEEvent) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, ev)
	return 1
}

func setup(t *testing.T) (comments.CommentService, *memstore.Store, *recordingPublisher, string) {
	t.Helper()
	log, _ := test.NewNullLogger()
	store := memstore.New()
	pub := &recordingPublisher{}
	p := &posts.Post{Title: "t", Content: "c", Author: "u", Comments: []posts.Comment{}, CreatedAt: time.Now()}
	require.NoError(t, store.Create(context.Background(), p))
	return comments.NewCommentService(store, pub, log), store, pub, p.ID
}

func TestAddCommentAppendsAndReturnsLast(t *testing.T) {
	svc, store, pub, postID := setup(t)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, postID, comments.NewCommentRequest{Content: "first", UserID: "U0", Username: "bob"})
	require.NoError(t, err)

	before, err := svc.ListComments(ctx, postID)
	require.NoError(t, err)

	c, err := svc.AddComment(ctx, postID, comments.NewCommentRequest{Content: "nice", UserID: "U1", Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "nice", c.Content)
	assert.Equal(t, "U1", c.User)
	assert.Equal(t, "alice", c.Username)
	assert.False(t, c.CreatedAt.IsZero())

	after, err := svc.ListComments(ctx, postID)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, *c, after[len(after)-1])
	assert.Equal(t, "first", after[0].Content)

	p, err := store.Get(ctx, postID)
	require.NoError(t, err)
	assert.Len(t, p.Comments, 2)

	require.Len(t, pub.events, 2)
	assert.Equal(t, postID, pub.topics[1])
	assert.Equal(t, comments.EventCommentCreated, pub.events[1].Event)
	var published posts.Comment
	require.NoError(t, json.Unmarshal([]byte(pub.events[1].Data), &published))
	assert.Equal(t, "nice", published.Content)
}

func TestAddCommentValidationLeavesPostUnchanged(t *testing.T) {
	svc, store, pub, postID := setup(t)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, postID, comments.NewCommentRequest{Content: "  ", UserID: "U1", Username: "alice"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"content is required"}, appErr.Details)

	_, err = svc.AddComment(ctx, postID, comments.NewCommentRequest{Content: "x"})
	var appErr2 *apperror.AppError
	require.ErrorAs(t, err, &appErr2)
	assert.Equal(t, []string{"userId is required", "username is required"}, appErr2.Details)

	p, err := store.Get(ctx, postID)
	require.NoError(t, err)
	assert.Empty(t, p.Comments)
	assert.Empty(t, pub.events)
}

func TestCommentsOnMissingPost(t *testing.T) {
	svc, _, _, _ := setup(t)
	ctx := context.Background()
	req := comments.NewCommentRequest{Content: "x", UserID: "u", Username: "n"}

	_, err := svc.AddComment(ctx, primitive.NewObjectID().Hex(), req)
	assert.True(t, apperror.IsNotFound(err))
	_, err = svc.ListComments(ctx, primitive.NewObjectID().Hex())
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.AddComment(ctx, "nope", req)
	assert.True(t, apperror.IsInvalidIdentifier(err))
	_, err = svc.ListComments(ctx, "nope")
	assert.True(t, apperror.IsInvalidIdentifier(err))
}

func TestAddCommentReportsPostIDBeforeBody(t *testing.T) {
	svc, _, pub, _ := setup(t)
	ctx := context.Background()
	empty := comments.NewCommentRequest{}

	_, err := svc.AddComment(ctx, "nope", empty)
	assert.True(t, apperror.IsInvalidIdentifier(err))
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid post ID", appErr.Message)

	_, err = svc.AddComment(ctx, primitive.NewObjectID().Hex(), empty)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, pub.events)
}

func TestListCommentsEmptyIsArray(t *testing.T) {
	svc, _, _, postID := setup(t)
	cs, err := svc.ListComments(context.Background(), postID)
	require.NoError(t, err)
	assert.NotNil(t, cs)
	assert.Empty(t, cs)
}

func TestConcurrentAppendsAreNotLost(t *testing.T) {
	svc, _, _, postID := setup(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddComment(ctx, postID, comments.NewCommentRequest{Content: "c", UserID: "u", Username: "n"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cs, err := svc.ListComments(ctx, postID)
	require.NoError(t, err)
	assert.Len(t, cs, n)
}
