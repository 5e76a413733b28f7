package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/user/blog-go/auth"
)

const userColumns = `id::text, username, email, password_hash, bio, created_at`

func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.Bio, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return &u, nil
}

// duplicateUserError maps a unique violation on users to the matching sentinel.
func duplicateUserError(constraint string) error {
	if strings.Contains(constraint, "email") {
		return auth.ErrDuplicateEmail
	}
	return auth.ErrDuplicateUsername
}

// CreateUser inserts u and assigns u.ID.
func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, bio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, u.Username, u.Email, u.HashedPassword, u.Bio, u.CreatedAt)
	if err != nil {
		if c := uniqueViolation(err); c != "" {
			return duplicateUserError(c)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	u.ID = id
	return nil
}

// GetUserByID returns a user by id.
func (s *Store) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	if !validID(id) {
		return nil, auth.ErrInvalidUserID
	}
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetUserByUsername returns a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// GetUserByEmail returns a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// UpdateUserProfile sets the provided fields. COALESCE keeps the stored value for
// fields left nil.
func (s *Store) UpdateUserProfile(ctx context.Context, id string, upd auth.ProfileUpdate) (*auth.User, error) {
	if !validID(id) {
		return nil, auth.ErrInvalidUserID
	}
	u, err := scanUser(s.db.QueryRow(ctx, `
		UPDATE users SET email = COALESCE($2, email), bio = COALESCE($3, bio)
		WHERE id = $1 RETURNING `+userColumns, id, upd.Email, upd.Bio))
	if err != nil {
		if c := uniqueViolation(err); c != "" {
			return nil, duplicateUserError(c)
		}
		return nil, err
	}
	return u, nil
}
