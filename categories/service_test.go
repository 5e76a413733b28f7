package categories_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/cache"
	"github.com/user/blog-go/categories"
	"github.com/user/blog-go/memstore"
)

// mapCache is an in-memory cache.ICache used to observe caching behaviour.
type mapCache struct {
	items   map[string][]categories.Category
	deletes int
}

func (m *mapCache) Get(_ context.Context, field string) (*[]categories.Category, error) {
	v, ok := m.items[field]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *mapCache) Set(_ context.Context, field string, data *[]categories.Category, _ ...time.Duration) error {
	m.items[field] = *data
	return nil
}

func (m *mapCache) Delete(_ context.Context, field string) error {
	delete(m.items, field)
	m.deletes++
	return nil
}

var _ cache.ICache[[]categories.Category] = (*mapCache)(nil)

func newService(t *testing.T) (*categories.Service, *mapCache) {
	t.Helper()
	log, _ := test.NewNullLogger()
	mc := &mapCache{items: map[string][]categories.Category{}}
	return categories.NewService(memstore.New(), mc, time.Minute, log), mc
}

func TestCreateAndList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, categories.CreateCategoryRequest{Name: " Web Development ", Description: "all things web"})
	require.NoError(t, err)
	assert.Equal(t, "Web Development", c.Name)
	assert.Equal(t, "web-development", c.Slug)

	_, err = svc.Create(ctx, categories.CreateCategoryRequest{Name: "Web Development"})
	assert.True(t, apperror.IsConflictError(err))

	_, err = svc.Create(ctx, categories.CreateCategoryRequest{Name: ""})
	assert.True(t, apperror.IsValidationError(err))

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)
}

func TestListIsCachedAndInvalidated(t *testing.T) {
	svc, mc := newService(t)
	ctx := context.Background()

	cs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, cs)
	assert.Empty(t, cs)
	assert.Contains(t, mc.items, "all")

	_, err = svc.Create(ctx, categories.CreateCategoryRequest{Name: "Food"})
	require.NoError(t, err)
	assert.NotContains(t, mc.items, "all", "create invalidates the list")

	cs, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, cs, 1)

	// A stale cached value is served until invalidated.
	mc.items["all"] = []categories.Category{{Name: "cached"}}
	cs, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cached", cs[0].Name)
}

func TestDelete(t *testing.T) {
	svc, mc := newService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, categories.CreateCategoryRequest{Name: "Travel"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.Equal(t, 2, mc.deletes)

	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, c.ID)))
	assert.True(t, apperror.IsInvalidIdentifier(svc.Delete(ctx, "x")))
	_, err = svc.Get(ctx, c.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(categories.DefaultCategories), n)

	n, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	cs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cs, 6)
	assert.Equal(t, "Food", cs[0].Name)
}

func TestDisabledRedisCacheFallsThrough(t *testing.T) {
	log, _ := test.NewNullLogger()
	svc := categories.NewService(memstore.New(), cache.NewCache[[]categories.Category](nil, "categories"), time.Minute, log)

	_, err := svc.Create(context.Background(), categories.CreateCategoryRequest{Name: "General"})
	require.NoError(t, err)
	cs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, cs, 1)
}
