package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/blog-go/posts"
)

// postDoc is the stored shape of a post.
type postDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Content       string             `bson:"content"`
	Category      string             `bson:"category"`
	Author        string             `bson:"author"`
	FeaturedImage string             `bson:"featuredImage,omitempty"`
	Slug          string             `bson:"slug,omitempty"`
	Comments      []posts.Comment    `bson:"comments"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func toPostDoc(p *posts.Post) postDoc {
	comments := p.Comments
	// A nil slice would be stored as null, and $push fails on null.
	if comments == nil {
		comments = []posts.Comment{}
	}
	return postDoc{
		Title:         p.Title,
		Content:       p.Content,
		Category:      p.Category,
		Author:        p.Author,
		FeaturedImage: p.FeaturedImage,
		Slug:          p.Slug,
		Comments:      comments,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (d postDoc) toPost() posts.Post {
	comments := d.Comments
	if comments == nil {
		comments = []posts.Comment{}
	}
	return posts.Post{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Content:       d.Content,
		Category:      d.Category,
		Author:        d.Author,
		FeaturedImage: d.FeaturedImage,
		Slug:          d.Slug,
		Comments:      comments,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// postFilter translates a posts.Filter into a query document. Search text is
// escaped so it matches literally, case-insensitively.
func postFilter(f posts.Filter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"content": re},
		}
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	return filter
}

// listSort is createdAt descending; ObjectIDs grow with insertion, so _id ascending
// keeps insertion order among equal timestamps.
var listSort = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}

// Find returns one page of matching posts.
func (s *Store) Find(ctx context.Context, q posts.ListQuery) ([]posts.Post, error) {
	opts := options.Find().
		SetSort(listSort).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := s.posts.Find(ctx, postFilter(q.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []postDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	out := make([]posts.Post, len(docs))
	for i, d := range docs {
		out[i] = d.toPost()
	}
	return out, nil
}

// Count returns the number of posts matching f.
func (s *Store) Count(ctx context.Context, f posts.Filter) (int64, error) {
	n, err := s.posts.CountDocuments(ctx, postFilter(f))
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

// Get returns one post.
func (s *Store) Get(ctx context.Context, id string) (*posts.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, posts.ErrInvalidID
	}
	var d postDoc
	if err := s.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, postLookupError(err)
	}
	p := d.toPost()
	return &p, nil
}

// Create inserts p and assigns p.ID.
func (s *Store) Create(ctx context.Context, p *posts.Post) error {
	d := toPostDoc(p)
	d.ID = primitive.NewObjectID()
	if _, err := s.posts.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	p.ID = d.ID.Hex()
	return nil
}

// patchUpdate builds the $set document for patch.
func patchUpdate(patch posts.Patch) bson.M {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	fields := map[string]*string{
		"title":         patch.Title,
		"content":       patch.Content,
		"category":      patch.Category,
		"author":        patch.Author,
		"featuredImage": patch.FeaturedImage,
		"slug":          patch.Slug,
	}
	for k, v := range fields {
		if v != nil {
			set[k] = *v
		}
	}
	return bson.M{"$set": set}
}

// Update applies patch and returns the updated post.
func (s *Store) Update(ctx context.Context, id string, patch posts.Patch) (*posts.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, posts.ErrInvalidID
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d postDoc
	if err := s.posts.FindOneAndUpdate(ctx, bson.M{"_id": oid}, patchUpdate(patch), opts).Decode(&d); err != nil {
		return nil, postLookupError(err)
	}
	p := d.toPost()
	return &p, nil
}

// Delete removes a post and returns it.
func (s *Store) Delete(ctx context.Context, id string) (*posts.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, posts.ErrInvalidID
	}
	var d postDoc
	if err := s.posts.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, postLookupError(err)
	}
	p := d.toPost()
	return &p, nil
}

// AppendComment pushes c onto the post's comments in one atomic update.
func (s *Store) AppendComment(ctx context.Context, postID string, c posts.Comment) error {
	oid, err := objectID(postID)
	if err != nil {
		return posts.ErrInvalidID
	}
	res, err := s.posts.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"comments": c}})
	if err != nil {
		return fmt.Errorf("failed to append comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// Comments returns the post's comments in insertion order.
func (s *Store) Comments(ctx context.Context, postID string) ([]posts.Comment, error) {
	oid, err := objectID(postID)
	if err != nil {
		return nil, posts.ErrInvalidID
	}
	var d struct {
		Comments []posts.Comment `bson:"comments"`
	}
	opts := options.FindOne().SetProjection(bson.M{"comments": 1})
	if err := s.posts.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&d); err != nil {
		return nil, postLookupError(err)
	}
	if d.Comments == nil {
		d.Comments = []posts.Comment{}
	}
	return d.Comments, nil
}

func postLookupError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return posts.ErrNotFound
	}
	return fmt.Errorf("post lookup failed: %w", err)
}
