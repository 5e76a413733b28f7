package pgstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blog-go/auth"
	"github.com/user/blog-go/categories"
	"github.com/user/blog-go/posts"
)

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%hello%", likePattern("hello"))
	assert.Equal(t, `%50\% off\_now\\%`, likePattern(`50% off_now\`))
}

func TestWhereClause(t *testing.T) {
	where, args := whereClause(posts.Filter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = whereClause(posts.Filter{Category: "C1"})
	assert.Equal(t, " WHERE category = $1", where)
	assert.Equal(t, []any{"C1"}, args)

	where, args = whereClause(posts.Filter{Search: "Go", Category: "C1"})
	assert.Equal(t, ` WHERE (title ILIKE $1 ESCAPE '\' OR content ILIKE $1 ESCAPE '\') AND category = $2`, where)
	assert.Equal(t, []any{"%Go%", "C1"}, args)
}

func TestSetClause(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	title, slug := "New", "new"
	set, args := setClause(posts.Patch{Title: &title, Slug: &slug, UpdatedAt: now})
	assert.Equal(t, "updated_at = $2, title = $3, slug = $4", set)
	assert.Equal(t, []any{now, "New", "new"}, args)
}

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	assert.Equal(t, "users_email_key", uniqueViolation(err))
	assert.Empty(t, uniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.Empty(t, uniqueViolation(errors.New("boom")))

	assert.Equal(t, auth.ErrDuplicateEmail, duplicateUserError("users_email_key"))
	assert.Equal(t, auth.ErrDuplicateUsername, duplicateUserError("users_username_key"))
}

func TestMalformedIDsNeverReachTheDatabase(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := &Store{log: log} // nil querier: any query would panic
	ctx := context.Background()

	_, err := s.Get(ctx, "nope")
	assert.ErrorIs(t, err, posts.ErrInvalidID)
	_, err = s.Update(ctx, "nope", posts.Patch{})
	assert.ErrorIs(t, err, posts.ErrInvalidID)
	_, err = s.Delete(ctx, "nope")
	assert.ErrorIs(t, err, posts.ErrInvalidID)
	assert.ErrorIs(t, s.AppendComment(ctx, "nope", posts.Comment{}), posts.ErrInvalidID)
	_, err = s.Comments(ctx, "nope")
	assert.ErrorIs(t, err, posts.ErrInvalidID)

	_, err = s.GetCategory(ctx, "nope")
	assert.ErrorIs(t, err, categories.ErrInvalidID)
	assert.ErrorIs(t, s.DeleteCategory(ctx, "nope"), categories.ErrInvalidID)

	_, err = s.GetUserByID(ctx, "nope")
	assert.ErrorIs(t, err, auth.ErrInvalidUserID)
	_, err = s.UpdateUserProfile(ctx, "nope", auth.ProfileUpdate{})
	require.ErrorIs(t, err, auth.ErrInvalidUserID)
}
