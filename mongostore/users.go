package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/blog-go/auth"
)

type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"password"`
	Bio            *string            `bson:"bio,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

func (d userDoc) toUser() *auth.User {
	return &auth.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		Email:          d.Email,
		HashedPassword: d.HashedPassword,
		Bio:            d.Bio,
		CreatedAt:      d.CreatedAt,
	}
}

// duplicateUserError tells which unique index a duplicate key error came from.
func duplicateUserError(err error) error {
	if strings.Contains(err.Error(), "email") {
		return auth.ErrDuplicateEmail
	}
	return auth.ErrDuplicateUsername
}

// CreateUser inserts u and assigns u.ID.
func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	d := userDoc{
		ID:             primitive.NewObjectID(),
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		Bio:            u.Bio,
		CreatedAt:      u.CreatedAt,
	}
	if _, err := s.users.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateUserError(err)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	u.ID = d.ID.Hex()
	return nil
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*auth.User, error) {
	var d userDoc
	if err := s.users.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return d.toUser(), nil
}

// GetUserByID returns a user by id.
func (s *Store) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, auth.ErrInvalidUserID
	}
	return s.findUser(ctx, bson.M{"_id": oid})
}

// GetUserByUsername returns a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

// GetUserByEmail returns a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

// UpdateUserProfile sets the provided profile fields and returns the updated user.
func (s *Store) UpdateUserProfile(ctx context.Context, id string, upd auth.ProfileUpdate) (*auth.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, auth.ErrInvalidUserID
	}
	set := bson.M{}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if len(set) == 0 {
		return s.GetUserByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d userDoc
	if err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&d); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, auth.ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, auth.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return d.toUser(), nil
}
