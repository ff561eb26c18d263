// Package db implements the persistence layer on top of a pgx connection
// pool. Constraint violations are translated into the shared error kinds so
// callers never inspect postgres error codes themselves.
package db

import (
	"errors"
	"fmt"

	"fakebook/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

// mapError classifies a postgres error: unique violations become
// ErrAlreadyExists, foreign key violations ErrNotFound (the referenced row is
// absent), missing rows ErrNotFound, anything else is wrapped as ErrStorage.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shared.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return shared.ErrAlreadyExists
		case pgForeignKeyViolation:
			return shared.ErrNotFound
		}
	}
	return fmt.Errorf("%w: %v", shared.ErrStorage, err)
}
