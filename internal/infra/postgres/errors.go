package postgres

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Postgres error fields: 'C' is the SQLSTATE code, 'n' the constraint name.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation,
// optionally scoped to a named constraint or index.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr pgdriver.Error
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Field('C') != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.Field('n') == constraint
}
