package categories

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/blog-go/apperror"
)

// Handler exposes the category endpoints.
type Handler struct {
	service *Service
	// requireAuth guards the mutating routes.
	requireAuth func(http.Handler) http.Handler
}

// NewHandler creates a category Handler. requireAuth wraps the create and delete routes.
func NewHandler(service *Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAuth: requireAuth}
}

// RegisterRoutes mounts the category endpoints (expected at /api/categories).
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.HandleList())
	router.Get("/{id}", h.HandleGet())
	router.Group(func(r chi.Router) {
		if h.requireAuth != nil {
			r.Use(h.requireAuth)
		}
		r.Post("/", h.HandleCreate())
		r.Delete("/{id}", h.HandleDelete())
	})
}

// HandleList godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} categories.Category
// @Router /categories [get]
func (h *Handler) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := h.service.List(r.Context())
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, cs)
	}
}

// HandleGet godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} categories.Category
// @Failure 400 {object} apperror.ErrorResponse "Invalid category ID"
// @Failure 404 {object} apperror.ErrorResponse "Category not found"
// @Router /categories/{id} [get]
func (h *Handler) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, c)
	}
}

// HandleCreate godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body categories.CreateCategoryRequest true "Category"
// @Success 201 {object} categories.Category
// @Failure 400 {object} apperror.ErrorResponse "Validation failed"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 409 {object} apperror.ErrorResponse "Category already exists"
// @Router /categories [post]
func (h *Handler) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCategoryRequest
		defer r.Body.Close()
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			apperror.WriteError(w, apperror.NewBadRequestError("Invalid request body", err))
			return
		}

		c, err := h.service.Create(r.Context(), req)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusCreated, c)
	}
}

// HandleDelete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} apperror.ErrorResponse "Invalid category ID"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Category not found"
// @Router /categories/{id} [delete]
func (h *Handler) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
	}
}
