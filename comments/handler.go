package comments

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/auth"
)

// Streamer serves a live event stream for one topic. *events.Broadcaster implements it.
type Streamer interface {
	ServeTopic(w http.ResponseWriter, r *http.Request, topic string)
}

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service  CommentService
	streamer Streamer
}

// NewCommentHandler creates a new CommentHandler. streamer may be nil, in which case
// the stream endpoint is not registered.
func NewCommentHandler(service CommentService, streamer Streamer) *CommentHandler {
	return &CommentHandler{service: service, streamer: streamer}
}

// RegisterRoutes registers the comment routes on the posts router (mounted at
// /api/posts), so paths are relative to a single post.
func (h *CommentHandler) RegisterRoutes(router chi.Router) {
	router.Post("/{id}/comments", h.addComment)
	router.Get("/{id}/comments", h.listComments)
}

// RegisterStreamRoutes registers the long-lived SSE route. It is kept apart from
// RegisterRoutes so the caller can mount it outside request-timeout middleware.
// Without a streamer nothing is registered.
func (h *CommentHandler) RegisterStreamRoutes(router chi.Router) {
	if h.streamer != nil {
		router.Get("/{id}/comments/stream", h.streamComments)
	}
}

// addComment godoc
// @Summary Add a comment to a post
// @Description Appends a comment to the post and returns the new comment. With a valid bearer token, userId and username default to the authenticated user.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param comment body comments.NewCommentRequest true "Comment"
// @Success 201 {object} posts.Comment
// @Failure 400 {object} apperror.ErrorResponse "Invalid post ID or validation failed"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /posts/{id}/comments [post]
func (h *CommentHandler) addComment(w http.ResponseWriter, r *http.Request) {
	var req NewCommentRequest
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		apperror.WriteError(w, apperror.NewBadRequestError("Invalid request body", err))
		return
	}
	if id, ok := auth.IdentityFromContext(r.Context()); ok {
		if req.UserID == "" {
			req.UserID = id.UserID
		}
		if req.Username == "" {
			req.Username = id.Username
		}
	}

	c, err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}
	apperror.WriteJSON(w, http.StatusCreated, c)
}

// listComments godoc
// @Summary List a post's comments
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} posts.Comment
// @Failure 400 {object} apperror.ErrorResponse "Invalid post ID"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /posts/{id}/comments [get]
func (h *CommentHandler) listComments(w http.ResponseWriter, r *http.Request) {
	cs, err := h.service.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperror.WriteError(w, err)
		return
	}
	apperror.WriteJSON(w, http.StatusOK, cs)
}

// streamComments godoc
// @Summary Stream new comments
// @Description Server-Sent Events stream of comments added to the post after the connection opens.
// @Tags comments
// @Produce text/event-stream
// @Param id path string true "Post ID"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} apperror.ErrorResponse "Invalid post ID"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /posts/{id}/comments/stream [get]
func (h *CommentHandler) streamComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	// Resolve the post first so unknown ids get a normal JSON error instead of an empty stream.
	if _, err := h.service.ListComments(r.Context(), postID); err != nil {
		apperror.WriteError(w, err)
		return
	}
	h.streamer.ServeTopic(w, r, postID)
}
