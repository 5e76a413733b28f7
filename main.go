// Command blog runs the blog API: posts with search, filtering and pagination,
// embedded comments, categories, image uploads and JWT authentication.
//
// @title Blog API
// @version 1.0
// @description Blog posts with search, categories, comments, uploads and JWT auth.
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/user/blog-go/cache"
	"github.com/user/blog-go/categories"
	"github.com/user/blog-go/config"
	"github.com/user/blog-go/db"
	"github.com/user/blog-go/events"
	"github.com/user/blog-go/logging"
	"github.com/user/blog-go/memstore"
	"github.com/user/blog-go/mongostore"
	"github.com/user/blog-go/pgstore"
	"github.com/user/blog-go/server"
	"github.com/user/blog-go/uploads"
)

const connectTimeout = 15 * time.Second

func main() {
	// In production variables are usually set directly; .env is a development aid.
	envErr := godotenv.Load()

	app := &cli.App{
		Name:   "blog",
		Usage:  "blog API server",
		Action: runServe,
		Flags:  serveFlags,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server (default)",
				Flags:  serveFlags,
				Action: runServe,
			},
			{
				Name:   "migrate",
				Usage:  "apply the postgres schema, or ensure mongo indexes",
				Action: runMigrate,
			},
			{
				Name:   "seed-categories",
				Usage:  "create the default categories that do not exist yet",
				Action: runSeedCategories,
			},
		},
		Before: func(c *cli.Context) error {
			if envErr != nil {
				logrus.WithError(envErr).Debug(".env file not loaded")
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("blog exited with error")
	}
}

var serveFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "migrate",
		Usage: "apply postgres migrations before serving",
	},
	&cli.BoolFlag{
		Name:  "seed",
		Usage: "seed the default categories before serving",
	},
}

// setup loads configuration and builds the logger every command shares.
func setup() (*config.AppConfig, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logging.New(cfg.Log), nil
}

// openStore connects the backend selected by STORE_DRIVER. The returned function
// releases its connections.
func openStore(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) (server.Backend, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.Store.Driver {
	case config.StoreMemory:
		log.Warn("using the in-memory store; data is lost on exit")
		return memstore.New(), func() {}, nil

	case config.StorePostgres:
		pool, err := db.NewPgxPool(ctx, cfg.Store.Postgres)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("host", cfg.Store.Postgres.Host).Info("connected to postgres")
		return pgstore.New(pool, log.WithField("store", "postgres")), pool.Close, nil

	default:
		client, database, err := db.NewMongo(ctx, cfg.Store.Mongo)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("database", cfg.Store.Mongo.Database).Info("connected to mongodb")
		store := mongostore.New(database, log.WithField("store", "mongo"))
		if err := store.EnsureIndexes(ctx); err != nil {
			log.WithError(err).Warn("failed to ensure mongo indexes")
		}
		closeFn := func() {
			dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer dcancel()
			if err := client.Disconnect(dctx); err != nil {
				log.WithError(err).Warn("mongo disconnect failed")
			}
		}
		return store, closeFn, nil
	}
}

// openCategoryCache returns the category listing cache and a close function. Without
// REDIS_ADDR the cache is disabled.
func openCategoryCache(ctx context.Context, cfg *config.CacheConfig, log logrus.FieldLogger) (cache.ICache[[]categories.Category], func()) {
	rc, err := cache.NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, category cache disabled")
		rc = nil
	}
	closeFn := func() {}
	if rc != nil {
		log.WithField("addr", cfg.Addr).Info("category cache enabled")
		closeFn = closeRedis(rc, log)
	}
	return cache.NewCache[[]categories.Category](rc, server.CategoryCacheKey), closeFn
}

func closeRedis(rc *redis.Client, log logrus.FieldLogger) func() {
	return func() {
		if err := rc.Close(); err != nil {
			log.WithError(err).Warn("redis close failed")
		}
	}
}

func runServe(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if c.Bool("migrate") {
		if err := migrate(ctx, cfg, log); err != nil {
			return err
		}
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	categoryCache, closeCache := openCategoryCache(ctx, cfg.Cache, log)
	defer closeCache()

	if c.Bool("seed") {
		if err := seedCategories(ctx, store, categoryCache, cfg, log); err != nil {
			return err
		}
	}

	up, err := uploads.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxSize)
	if err != nil {
		return fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	broadcaster := events.NewBroadcaster(log.WithField("component", "sse"))
	broadcaster.MaxStreamDuration = cfg.Server.StreamTimeout

	handler := server.NewRouter(server.Deps{
		Config:        cfg,
		Log:           log,
		Store:         store,
		Uploads:       up,
		Broadcaster:   broadcaster,
		CategoryCache: categoryCache,
	})

	srv := server.NewHTTPServer(":"+cfg.Server.Port, handler, cfg.Server.RequestTimeout)
	srv.RegisterOnShutdown(broadcaster.Close)
	return server.Run(ctx, srv, log)
}

func runMigrate(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	return migrate(c.Context, cfg, log)
}

// migrate applies the postgres schema. For mongo it ensures the indexes, which is the
// only schema the document store has.
func migrate(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) error {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		return db.RunMigrations(cfg.Store.Postgres, log)
	case config.StoreMongo:
		store, closeStore, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()
		return store.(*mongostore.Store).EnsureIndexes(ctx)
	default:
		log.Info("memory store has no schema; nothing to migrate")
		return nil
	}
}

func runSeedCategories(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	categoryCache, closeCache := openCategoryCache(c.Context, cfg.Cache, log)
	defer closeCache()

	return seedCategories(c.Context, store, categoryCache, cfg, log)
}

func seedCategories(ctx context.Context, store categories.Store, listCache cache.ICache[[]categories.Category], cfg *config.AppConfig, log logrus.FieldLogger) error {
	svc := categories.NewService(store, listCache, cfg.Cache.CategoryTTL, log.WithField("component", "categories"))
	n, err := svc.Seed(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	log.WithField("created", n).Info("categories seeded")
	return nil
}
