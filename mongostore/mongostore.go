// Package mongostore implements the post, comment, category and user stores on MongoDB.
// Posts embed their comments, so appending a comment is a single $push on the post
// document.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	PostsCollection      = "posts"
	CategoriesCollection = "categories"
	UsersCollection      = "users"
)

var errBadObjectID = errors.New("malformed object id")

// Store is a MongoDB-backed store.
type Store struct {
	db         *mongo.Database
	posts      *mongo.Collection
	categories *mongo.Collection
	users      *mongo.Collection
	log        logrus.FieldLogger
}

// New returns a Store on db. Call EnsureIndexes once at startup.
func New(db *mongo.Database, log logrus.FieldLogger) *Store {
	return &Store{
		db:         db,
		posts:      db.Collection(PostsCollection),
		categories: db.Collection(CategoriesCollection),
		users:      db.Collection(UsersCollection),
		log:        log,
	}
}

// EnsureIndexes creates the indexes listing and uniqueness rely on. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	groups := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{s.posts, []mongo.IndexModel{
			{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		}},
		{s.categories, []mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{s.users, []mongo.IndexModel{
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
	}
	for _, g := range groups {
		names, err := g.coll.Indexes().CreateMany(ctx, g.models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", g.coll.Name(), err)
		}
		s.log.WithFields(logrus.Fields{"collection": g.coll.Name(), "indexes": names}).Debug("indexes ensured")
	}
	return nil
}

// Ping checks the connection to the primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errBadObjectID
	}
	return oid, nil
}
