// Package db provides database connectivity and schema migration for the blog.
// PostgreSQL is reached through a pgx connection pool and migrated with golang-migrate
// from SQL files embedded in the binary; MongoDB is reached through the official driver.
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	// The postgres database driver for golang-migrate. It talks to PostgreSQL through
	// database/sql with the lib/pq driver registered below.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq" // database/sql driver used by migrate's postgres driver
	"github.com/sirupsen/logrus"

	"github.com/user/blog-go/apperror"
	"github.com/user/blog-go/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// NewPgxPool establishes a pgxpool connection pool and verifies it with a ping.
func NewPgxPool(ctx context.Context, cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(getDSN(cfg))
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// A timeout keeps startup from blocking forever on an unreachable database.
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pgxpool for database %s", cfg.DBName), err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to the database %s with pgxpool", cfg.DBName), err)
	}
	return pool, nil
}

// getDSN constructs a DSN string from PoolConfig. The same URL form is understood by
// pgx and by golang-migrate's postgres driver.
func getDSN(cfg *config.PoolConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)
}

// RunMigrations applies any pending migrations embedded under migrations/.
// Files follow golang-migrate's `{version}_{title}.up.sql` / `.down.sql` naming.
func RunMigrations(cfg *config.PoolConfig, log logrus.FieldLogger) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return apperror.NewMigrationError("failed to open embedded migrations", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, getDSN(cfg))
	if err != nil {
		return apperror.NewMigrationError("failed to create migrator", err)
	}
	// m.Close() returns one error for the source and one for the database.
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.WithError(srcErr).Warn("error closing migration source")
		}
		if dbErr != nil {
			log.WithError(dbErr).Warn("error closing migration database instance")
		}
	}()

	// migrate.ErrNoChange only means the schema is already current.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to run migrations", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return apperror.NewMigrationError("failed to read migration version", err)
	}
	log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("database schema is up to date")
	return nil
}
