package storage

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgInvalidTextRepr     = "22P02"
	pgForeignKeyViolation = "23503"

	usersEmailConstraint = "users_email_key"
)

// mapPgError translates driver errors into the package sentinels. Errors it
// does not recognise are returned unchanged.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == usersEmailConstraint {
			return ErrDuplicateEmail
		}
	case pgInvalidTextRepr, pgForeignKeyViolation:
		return ErrNotFound
	}
	return err
}
