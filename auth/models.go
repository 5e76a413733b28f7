// Package auth contains authentication: user accounts, password hashing, JWT issuing
// and the middleware that turns a bearer token into an Identity on the request context.
// The rest of the application only ever consumes a user's id and username.
package auth

import (
	"context"
	"errors"
	"time"
)

// User represents a user account.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Do not expose hashed password
	Bio            *string   `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ProfileUpdate lists the profile fields a user may change. Nil means unchanged.
type ProfileUpdate struct {
	Email *string
	Bio   *string
}

// Errors reported by UserStore implementations.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// UserStore is the persistence contract for users.
type UserStore interface {
	// CreateUser stores u and assigns u.ID. Duplicate usernames or emails are reported
	// as ErrDuplicateUsername / ErrDuplicateEmail.
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUserProfile(ctx context.Context, id string, upd ProfileUpdate) (*User, error)
}
