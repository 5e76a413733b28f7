package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blog-go/auth"
	"github.com/user/blog-go/categories"
	"github.com/user/blog-go/config"
	"github.com/user/blog-go/events"
	"github.com/user/blog-go/memstore"
	"github.com/user/blog-go/posts"
	"github.com/user/blog-go/server"
	"github.com/user/blog-go/uploads"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Store: &config.StoreConfig{Driver: config.StoreMemory},
		Auth: &config.AuthConfig{
			JWTSecret:            "test-secret",
			AccessTokenDuration:  time.Minute,
			RefreshTokenDuration: time.Hour,
		},
		Server: &config.ServerConfig{Port: "0", AllowedOrigins: []string{"*"}, RequestTimeout: 5 * time.Second},
		Upload: &config.UploadConfig{MaxSize: 1 << 20},
		Cache:  &config.CacheConfig{CategoryTTL: time.Minute},
		Log:    &config.LogConfig{Level: "error"},
	}
}

type app struct {
	t       *testing.T
	handler http.Handler
}

func newApp(t *testing.T, store server.Backend) *app {
	log, _ := test.NewNullLogger()
	up, err := uploads.NewLocalStore(t.TempDir(), 1<<20)
	require.NoError(t, err)
	h := server.NewRouter(server.Deps{
		Config:      testConfig(),
		Log:         log,
		Store:       store,
		Uploads:     up,
		Broadcaster: events.NewBroadcaster(log),
	})
	return &app{t: t, handler: h}
}

func (a *app) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestBlogFlow(t *testing.T) {
	a := newApp(t, memstore.New())

	rec := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "Alice@Example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"login": "alice@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tokens := decode[auth.TokenResponse](t, rec)
	require.NotEmpty(t, tokens.AccessToken)

	// Category writes need a token.
	rec = a.do(http.MethodPost, "/api/categories", "", map[string]string{"name": "Tech"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = a.do(http.MethodPost, "/api/categories", tokens.AccessToken, map[string]string{"name": "Tech"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cat := decode[categories.Category](t, rec)

	rec = a.do(http.MethodPost, "/api/posts", tokens.AccessToken, map[string]string{
		"title": "Hello Go", "content": "first", "category": cat.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode[posts.Post](t, rec)
	assert.Equal(t, tokens.User.ID, post.Author)

	rec = a.do(http.MethodPost, "/api/posts", "", map[string]string{"title": "Other", "content": "second", "author": "bob"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, "/api/posts?search=hello&category="+cat.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[posts.ListResponse](t, rec)
	require.Len(t, list.Posts, 1)
	assert.Equal(t, post.ID, list.Posts[0].ID)
	assert.EqualValues(t, 1, list.Pagination.TotalPosts)

	rec = a.do(http.MethodPost, "/api/posts/"+post.ID+"/comments", tokens.AccessToken, map[string]string{"content": "nice"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode[posts.Comment](t, rec)
	assert.Equal(t, "alice", comment.Username)

	rec = a.do(http.MethodGet, "/api/posts/"+post.ID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]posts.Comment](t, rec), 1)

	rec = a.do(http.MethodGet, "/api/users/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"alice@example.com"`)

	rec = a.do(http.MethodDelete, "/api/posts/"+post.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(http.MethodGet, "/api/posts/"+post.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	a := newApp(t, memstore.New())

	rec := a.do(http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization header is missing")

	// An invalid token on the optional-auth posts router is ignored.
	rec = a.do(http.MethodGet, "/api/posts", "garbage", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	a := newApp(t, memstore.New())
	rec := a.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

type failingStore struct {
	*memstore.Store
}

func (failingStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth(t *testing.T) {
	rec := newApp(t, memstore.New()).do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = newApp(t, failingStore{memstore.New()}).do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestSwaggerDocIsServed(t *testing.T) {
	rec := newApp(t, memstore.New()).do(http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/posts")
}

func TestRecovererReturnsJSON500(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := chi.NewRouter()
	r.Use(server.Recoverer(log))
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "recovered from panic", hook.LastEntry().Message)
}

func TestCommentStreamOutlivesRequestTimeout(t *testing.T) {
	log, _ := test.NewNullLogger()
	up, err := uploads.NewLocalStore(t.TempDir(), 1<<20)
	require.NoError(t, err)
	cfg := testConfig()
	cfg.Server.RequestTimeout = 30 * time.Millisecond
	b := events.NewBroadcaster(log)
	b.MaxStreamDuration = 200 * time.Millisecond
	a := &app{t: t, handler: server.NewRouter(server.Deps{
		Config:      cfg,
		Log:         log,
		Store:       memstore.New(),
		Uploads:     up,
		Broadcaster: b,
	})}

	rec := a.do(http.MethodPost, "/api/posts", "", map[string]string{"title": "Live", "content": "body", "author": "bob"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode[posts.Post](t, rec)

	start := time.Now()
	rec = a.do(http.MethodGet, "/api/posts/"+post.ID+"/comments/stream", "", nil)
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: open\n")
	// Ended by the stream's own limit, not the request timeout.
	assert.GreaterOrEqual(t, elapsed, 150*time.Millisecond)
}
