// Package memstore is an in-process implementation of every store interface in the
// application. It backs the test suites and STORE_DRIVER=memory development runs.
// Identifiers are 24-hex ObjectIDs so ids look the same as with MongoDB.
package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/user/blog-go/auth"
	"github.com/user/blog-go/categories"
	"github.com/user/blog-go/posts"
)

// Store holds posts, categories and users behind a single RWMutex. Every returned
// value is a copy, so callers can never mutate stored state.
type Store struct {
	mu sync.RWMutex
	// posts is kept in insertion order; listing relies on it for tie-breaking.
	posts      []*posts.Post
	categories []*categories.Category
	users      []*auth.User
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// parseID checks that id is a 24-hex ObjectID.
func parseID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return nil }
