package memstore

import (
	"context"

	"github.com/user/blog-go/auth"
)

func cloneUser(u *auth.User) *auth.User {
	cp := *u
	if u.Bio != nil {
		bio := *u.Bio
		cp.Bio = &bio
	}
	return &cp
}

func (s *Store) findUser(match func(*auth.User) bool) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, auth.ErrUserNotFound
}

// CreateUser stores u, rejecting duplicate usernames and emails.
func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return auth.ErrDuplicateUsername
		}
		if existing.Email == u.Email {
			return auth.ErrDuplicateEmail
		}
	}
	u.ID = newID()
	s.users = append(s.users, cloneUser(u))
	return nil
}

// GetUserByID returns a user by id.
func (s *Store) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	if !parseID(id) {
		return nil, auth.ErrInvalidUserID
	}
	return s.findUser(func(u *auth.User) bool { return u.ID == id })
}

// GetUserByUsername returns a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	return s.findUser(func(u *auth.User) bool { return u.Username == username })
}

// GetUserByEmail returns a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findUser(func(u *auth.User) bool { return u.Email == email })
}

// UpdateUserProfile changes the email and/or bio of a user.
func (s *Store) UpdateUserProfile(ctx context.Context, id string, upd auth.ProfileUpdate) (*auth.User, error) {
	if !parseID(id) {
		return nil, auth.ErrInvalidUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *auth.User
	for _, u := range s.users {
		if u.ID == id {
			target = u
		} else if upd.Email != nil && u.Email == *upd.Email {
			return nil, auth.ErrDuplicateEmail
		}
	}
	if target == nil {
		return nil, auth.ErrUserNotFound
	}
	if upd.Email != nil {
		target.Email = *upd.Email
	}
	if upd.Bio != nil {
		bio := *upd.Bio
		target.Bio = &bio
	}
	return cloneUser(target), nil
}
