// Package users, as part of the user profile management module.
// This file, `service.go`, contains the business logic for user profile operations.
package users

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/auth"
	"github.com/user/blog-go/validation"
)

// UserService provides methods for user profile management.
// Accounts are owned by the auth package; this service only reads and edits profiles
// through the same auth.UserStore.
type UserService struct {
	store auth.UserStore
	log   logrus.FieldLogger
}

// NewUserService creates a new UserService.
func NewUserService(store auth.UserStore, log logrus.FieldLogger) *UserService {
	return &UserService{store: store, log: log}
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *UserService) GetUserProfile(ctx context.Context, userID string) (*UserProfileResponse, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, s.storeError(err, userID)
	}
	return profileFromUser(user), nil
}

// UpdateUserProfile updates a user's email and/or bio.
func (s *UserService) UpdateUserProfile(ctx context.Context, userID string, req UpdateUserProfileRequest) (*UserProfileResponse, error) {
	if req.Email == nil && req.Bio == nil {
		return nil, apperror.NewBadRequestError("No fields provided for update", nil)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}
	if details := validation.Struct(req); len(details) > 0 {
		return nil, apperror.NewValidationError("Validation failed", details)
	}

	user, err := s.store.UpdateUserProfile(ctx, userID, auth.ProfileUpdate{Email: req.Email, Bio: req.Bio})
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("email '"+*req.Email+"' already exists", err)
		}
		return nil, s.storeError(err, userID)
	}

	s.log.WithField("user_id", userID).Info("user profile updated")
	return profileFromUser(user), nil
}

func (s *UserService) storeError(err error, userID string) error {
	if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidUserID) {
		return apperror.NewNotFoundError("user not found", err)
	}
	s.log.WithError(err).WithField("user_id", userID).Error("user store failure")
	return apperror.NewDatabaseError("failed to access user profile", err)
}
