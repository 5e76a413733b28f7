// Package pgstore implements the post, comment, category and user stores on PostgreSQL
// through a pgx connection pool. The schema lives in db/migrations. Comments are kept
// as a JSONB array on the post row.
package pgstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const pgUniqueViolation = "23505"

// querier is the subset of *pgxpool.Pool the store uses.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store is a PostgreSQL-backed store.
type Store struct {
	db  querier
	log logrus.FieldLogger

	ping func(ctx context.Context) error
}

// New returns a Store on pool.
func New(pool *pgxpool.Pool, log logrus.FieldLogger) *Store {
	return &Store{db: pool, log: log, ping: pool.Ping}
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// validID reports whether id is a well-formed UUID; anything else can never match a row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// uniqueViolation returns the violated constraint name, or "" if err is not a unique
// violation.
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}
