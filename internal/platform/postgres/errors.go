// Package postgres implements the store interfaces using a PostgreSQL
// database as the storage backend.
package postgres

import (
	"errors"
	"fmt"

	"github.com/arunika-app/arunika-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes.
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
	pgCheckViolationCode      = "23514"
)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, such as a duplicate email address.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign key
// violation, such as a child row pointing at a missing parent.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode
}

// upstreamError converts constraint failures the database reported about the
// request into store.ErrUpstream with the database's own message, so the API
// layer can pass it through with HTTP 400. Errors the database did not
// attribute to the request are returned unchanged.
func upstreamError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolationCode, pgForeignKeyViolationCode, pgCheckViolationCode:
			return fmt.Errorf("%w: %s", store.ErrUpstream, pgErr.Message)
		}
	}
	return err
}
