package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/blog-go/categories"
)

type categoryDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Slug        string             `bson:"slug"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d categoryDoc) toCategory() categories.Category {
	return categories.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Slug:        d.Slug,
		CreatedAt:   d.CreatedAt,
	}
}

// ListCategories returns every category ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]categories.Category, error) {
	cursor, err := s.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	out := make([]categories.Category, len(docs))
	for i, d := range docs {
		out[i] = d.toCategory()
	}
	return out, nil
}

// GetCategory returns one category.
func (s *Store) GetCategory(ctx context.Context, id string) (*categories.Category, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, categories.ErrInvalidID
	}
	var d categoryDoc
	if err := s.categories.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, categories.ErrNotFound
		}
		return nil, fmt.Errorf("category lookup failed: %w", err)
	}
	c := d.toCategory()
	return &c, nil
}

// CreateCategory inserts c. The unique index on name reports duplicates.
func (s *Store) CreateCategory(ctx context.Context, c *categories.Category) error {
	d := categoryDoc{
		ID:          primitive.NewObjectID(),
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		CreatedAt:   c.CreatedAt,
	}
	if _, err := s.categories.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return categories.ErrDuplicateName
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	c.ID = d.ID.Hex()
	return nil
}

// DeleteCategory removes a category. Posts referencing it are left alone.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return categories.ErrInvalidID
	}
	res, err := s.categories.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return categories.ErrNotFound
	}
	return nil
}
