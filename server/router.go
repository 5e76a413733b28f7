// Package server assembles the HTTP application: global middleware, the feature
// routers and the operational endpoints (/health, /swagger).
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/auth"
	"github.com/user/blog-go/cache"
	"github.com/user/blog-go/categories"
	"github.com/user/blog-go/comments"
	"github.com/user/blog-go/config"
	_ "github.com/user/blog-go/docs" // registers the swagger spec
	"github.com/user/blog-go/events"
	"github.com/user/blog-go/logging"
	"github.com/user/blog-go/posts"
	"github.com/user/blog-go/uploads"
	"github.com/user/blog-go/users"
)

// Backend is everything the application needs from a persistence layer.
// memstore, mongostore and pgstore all satisfy it.
type Backend interface {
	posts.Store
	comments.Store
	categories.Store
	auth.UserStore
	Ping(ctx context.Context) error
}

// Deps are the long-lived collaborators the router is built from. They are created
// once in main.
type Deps struct {
	Config      *config.AppConfig
	Log         logrus.FieldLogger
	Store       Backend
	Uploads     *uploads.LocalStore
	Broadcaster *events.Broadcaster
	// CategoryCache may be nil, in which case category listings always hit the store.
	CategoryCache cache.ICache[[]categories.Category]
}

// CategoryCacheKey prefixes the redis keys of cached category listings.
const CategoryCacheKey = "blog:categories"

// healthTimeout bounds the store ping behind /health.
const healthTimeout = 2 * time.Second

// NewRouter wires services and handlers onto a chi router.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config

	authService := auth.NewAuthService(d.Store, *cfg.Auth, d.Log.WithField("component", "auth"))
	userService := users.NewUserService(d.Store, d.Log.WithField("component", "users"))
	postService := posts.NewPostService(d.Store, d.Log.WithField("component", "posts"))

	var (
		publisher comments.Publisher
		streamer  comments.Streamer
	)
	if d.Broadcaster != nil {
		publisher, streamer = d.Broadcaster, d.Broadcaster
	}
	commentService := comments.NewCommentService(d.Store, publisher, d.Log.WithField("component", "comments"))

	categoryCache := d.CategoryCache
	if categoryCache == nil {
		categoryCache = cache.NewCache[[]categories.Category](nil, CategoryCacheKey)
	}
	categoryService := categories.NewService(d.Store, categoryCache, cfg.Cache.CategoryTTL, d.Log.WithField("component", "categories"))

	requireAuth := auth.JWTMiddleware(authService)

	postHandler := posts.NewHandler(postService)
	commentHandler := comments.NewCommentHandler(commentService, streamer)
	categoryHandler := categories.NewHandler(categoryService, requireAuth)
	authHandlers := auth.NewHandlers(authService)
	userHandlers := users.NewUserHandlers(userService)
	uploadHandler := uploads.NewHandler(d.Uploads, d.Log.WithField("component", "uploads"))

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(d.Log))
	r.Use(Recoverer(d.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Timeout writes its own 504 once the deadline passes, so it is applied
	// per group and the SSE stream stays outside it.
	timeout := middleware.Timeout(cfg.Server.RequestTimeout)

	r.With(timeout).Get("/health", healthHandler(d.Store))
	r.With(timeout).Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Use(auth.OptionalJWTMiddleware(authService))
			commentHandler.RegisterStreamRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(timeout)
				postHandler.RegisterRoutes(r)
				commentHandler.RegisterRoutes(r)
			})
		})
		r.Group(func(r chi.Router) {
			r.Use(timeout)
			r.Route("/categories", categoryHandler.RegisterRoutes)
			r.Route("/auth", authHandlers.RegisterRoutes)
			r.Route("/users", func(r chi.Router) {
				r.Use(requireAuth)
				userHandlers.RegisterRoutes(r)
			})
			r.Route("/upload", uploadHandler.RegisterRoutes)
		})
	})
	r.Route("/uploads", func(r chi.Router) {
		r.Use(timeout)
		uploadHandler.RegisterStatic(r)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apperror.WriteError(w, apperror.NewNotFoundError("Route not found", nil))
	})

	return r
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

// healthHandler godoc
// @Summary Health check
// @Description Pings the configured store.
// @Tags health
// @Produce json
// @Success 200 {object} server.HealthResponse
// @Failure 503 {object} server.HealthResponse
// @Router /health [get]
func healthHandler(p interface{ Ping(context.Context) error }) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			apperror.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: err.Error()})
			return
		}
		apperror.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
