// Package users encapsulates functionality related to user profile management.
// This file, `handlers.go`, is the "Controller" layer for /api/users.
package users

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/auth"
)

// UserHandlers provides HTTP handlers for user profile management.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes mounts the profile endpoints. The router is expected to already
// carry auth.JWTMiddleware.
func (h *UserHandlers) RegisterRoutes(router chi.Router) {
	router.Get("/me", h.HandleGetUserProfile())
	router.Put("/me", h.HandleUpdateUserProfile())
}

// HandleGetUserProfile godoc
// @Summary Get current user's profile
// @Description Retrieves the profile information for the currently authenticated user.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserProfileResponse "Successfully retrieved user profile"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - User not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/me [get]
func (h *UserHandlers) HandleGetUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			apperror.WriteError(w, apperror.NewAuthError("User ID not found in context, middleware issue?", nil))
			return
		}

		profile, err := h.service.GetUserProfile(r.Context(), id.UserID)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, profile)
	}
}

// HandleUpdateUserProfile godoc
// @Summary Update current user's profile
// @Description Updates the email and/or bio of the currently authenticated user.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userProfile body UpdateUserProfileRequest true "User profile data to update"
// @Success 200 {object} UserProfileResponse "Successfully updated user profile"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input data"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - User not found"
// @Failure 409 {object} apperror.ErrorResponse "Conflict - e.g., email already exists"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/me [put]
func (h *UserHandlers) HandleUpdateUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			apperror.WriteError(w, apperror.NewAuthError("User ID not found in context, middleware issue?", nil))
			return
		}

		var req UpdateUserProfileRequest
		defer r.Body.Close()
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			apperror.WriteError(w, apperror.NewBadRequestError("Invalid request body", err))
			return
		}

		profile, err := h.service.UpdateUserProfile(r.Context(), id.UserID, req)
		if err != nil {
			apperror.WriteError(w, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, profile)
	}
}
