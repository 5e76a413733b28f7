package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/config"
)

// NewMongo connects to MongoDB, pings the primary and returns the client together with
// the configured database. The caller owns the client and must Disconnect it.
func NewMongo(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, apperror.NewDatabaseError("failed to connect to mongodb", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, apperror.NewDatabaseError(fmt.Sprintf("failed to ping mongodb at %s", redactURI(cfg.URI)), err)
	}
	return client, client.Database(cfg.Database), nil
}

// redactURI strips credentials from a connection string for log and error output.
func redactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "<invalid uri>"
	}
	u.User = nil
	return u.Redacted()
}
