// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current account is not
// authorized to perform an operation on a resource owned by another
// store, while ErrUsernameExists signals that registration collided
// with an existing account name.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrStoreNotFound is returned when a store cannot be found in the DB.
var ErrStoreNotFound = errors.New("store not found")

// ErrServiceNotFound is returned when a service cannot be found in the DB.
var ErrServiceNotFound = errors.New("service not found")

// ErrReservationNotFound is returned when a reservation cannot be found
// for the requesting user.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrUsernameExists is returned when registration hits the unique
// constraint on app_users.username. Handlers should translate this into
// an HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
