package posts

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/auth"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Handler exposes the post endpoints over HTTP.
type Handler struct {
	service Service
}

// NewHandler creates a new post Handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the post endpoints on router (expected at /api/posts).
// The item routes are registered one by one rather than through r.Route so that the
// comments package can mount /{id}/comments on the same router.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.HandleList())
	router.Post("/", h.HandleCreate())
	router.Get("/{id}", h.HandleGet())
	router.Put("/{id}", h.HandleUpdate())
	router.Delete("/{id}", h.HandleDelete())
}

// HandleList godoc
// @Summary List posts
// @Description Returns one page of posts, newest first, optionally filtered by a case-insensitive search over title and content and by exact category id.
// @Tags posts
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param search query string false "Search text"
// @Param category query string false "Category id"
// @Success 200 {object} posts.ListResponse
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /posts [get]
func (h *Handler) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.service.List(r.Context(), ParseListParams(r.URL.Query()))
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGet godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse "Invalid post ID"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (h *Handler) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, p)
	}
}

// HandleCreate godoc
// @Summary Create a post
// @Description Creates a post. When a valid bearer token is sent and author is omitted, the author is the authenticated user.
// @Tags posts
// @Accept json
// @Produce json
// @Param post body posts.CreatePostRequest true "Post to create"
// @Success 201 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /posts [post]
func (h *Handler) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if id, ok := auth.IdentityFromContext(r.Context()); ok && req.Author == "" {
			req.Author = id.UserID
		}

		p, err := h.service.Create(r.Context(), req)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusCreated, p)
	}
}

// HandleUpdate godoc
// @Summary Update a post
// @Description Partially updates a post. Omitted fields are left unchanged.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body posts.UpdatePostRequest true "Fields to update"
// @Success 200 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse "Invalid post ID or validation failed"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /posts/{id} [put]
func (h *Handler) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdatePostRequest
		if !decodeBody(w, r, &req) {
			return
		}

		p, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, p)
	}
}

// HandleDelete godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} posts.DeletePostResponse
// @Failure 400 {object} apperror.ErrorResponse "Invalid post ID"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
func (h *Handler) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, DeletePostResponse{
			Message:     "Post deleted successfully",
			DeletedPost: p,
		})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		apperror.WriteError(w, apperror.NewBadRequestError("Invalid request body", err))
		return false
	}
	return true
}
