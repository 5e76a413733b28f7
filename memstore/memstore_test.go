package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blog-go/auth"
	"github.com/user/blog-go/categories"
	"github.com/user/blog-go/posts"
)

func TestFindOrdersNewestFirstWithInsertionTieBreak(t *testing.T) {
	ctx := context.Background()
	s := New()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, p := range []posts.Post{
		{Title: "a", CreatedAt: t0},
		{Title: "b", CreatedAt: t0.Add(time.Minute)},
		{Title: "c", CreatedAt: t0},
	} {
		p := p
		require.NoError(t, s.Create(ctx, &p))
	}

	got, err := s.Find(ctx, posts.ListQuery{Limit: 10})
	require.NoError(t, err)
	titles := []string{}
	for _, p := range got {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"b", "a", "c"}, titles)

	page, err := s.Find(ctx, posts.ListQuery{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].Title)
}

func TestReturnedPostsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := &posts.Post{Title: "orig"}
	require.NoError(t, s.Create(ctx, p))

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	got.Title = "mutated"
	got.Comments = append(got.Comments, posts.Comment{Content: "sneaky"})

	again, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "orig", again.Title)
	assert.Empty(t, again.Comments)
}

func TestPostIDErrors(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "123")
	assert.ErrorIs(t, err, posts.ErrInvalidID)
	_, err = s.Get(ctx, "0123456789abcdef01234567")
	assert.ErrorIs(t, err, posts.ErrNotFound)
	assert.ErrorIs(t, s.AppendComment(ctx, "123", posts.Comment{}), posts.ErrInvalidID)
	_, err = s.Delete(ctx, "0123456789abcdef01234567")
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestCategoriesSortedAndUnique(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, name := range []string{"Travel", "Food", "General"} {
		require.NoError(t, s.CreateCategory(ctx, &categories.Category{Name: name}))
	}
	assert.ErrorIs(t, s.CreateCategory(ctx, &categories.Category{Name: "Food"}), categories.ErrDuplicateName)
	// Names are case-sensitive.
	require.NoError(t, s.CreateCategory(ctx, &categories.Category{Name: "food"}))

	cs, err := s.ListCategories(ctx)
	require.NoError(t, err)
	var names []string
	for _, c := range cs {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Food", "General", "Travel", "food"}, names)

	require.NoError(t, s.DeleteCategory(ctx, cs[0].ID))
	assert.ErrorIs(t, s.DeleteCategory(ctx, cs[0].ID), categories.ErrNotFound)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := &auth.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, s.CreateUser(ctx, u))
	require.NotEmpty(t, u.ID)

	assert.ErrorIs(t, s.CreateUser(ctx, &auth.User{Username: "alice", Email: "x@example.com"}), auth.ErrDuplicateUsername)
	assert.ErrorIs(t, s.CreateUser(ctx, &auth.User{Username: "bob", Email: "alice@example.com"}), auth.ErrDuplicateEmail)
	require.NoError(t, s.CreateUser(ctx, &auth.User{Username: "bob", Email: "bob@example.com"}))

	byEmail, err := s.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	taken := "bob@example.com"
	_, err = s.UpdateUserProfile(ctx, u.ID, auth.ProfileUpdate{Email: &taken})
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)

	bio := "hi"
	updated, err := s.UpdateUserProfile(ctx, u.ID, auth.ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "hi", *updated.Bio)

	_, err = s.GetUserByUsername(ctx, "carol")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
	_, err = s.GetUserByID(ctx, "bad")
	assert.ErrorIs(t, err, auth.ErrInvalidUserID)
}
