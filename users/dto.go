// Package users, as part of the user profile management module.
// This file, `dto.go`, defines the request and response bodies for /api/users/me.
package users

import (
	"time"

	"github.com/user/blog-go/auth"
)

// UserProfileResponse represents the data returned for a user profile.
// @Description User profile information
type UserProfileResponse struct {
	// example: 665f1c2e9b1d4a0087654321
	ID string `json:"id"`
	// example: johndoe
	Username string `json:"username"`
	// example: johndoe@example.com
	Email string `json:"email"`
	// `*string` allows `bio` to be omitted when not set.
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func profileFromUser(u *auth.User) *UserProfileResponse {
	return &UserProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateUserProfileRequest represents the data for updating a user profile.
// Pointer fields allow partial updates: nil leaves the field unchanged.
// @Description Request body for updating user profile
type UpdateUserProfileRequest struct {
	Email *string `json:"email,omitempty" validate:"omitnil,email" example:"john.doe.new@example.com"`
	Bio   *string `json:"bio,omitempty" validate:"omitnil,max=500" example:"Writes about Go and distributed systems."`
}
