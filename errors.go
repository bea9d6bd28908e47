package recetario

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested recipe, user, or comment
	// does not exist.
	ErrNotFound = errors.New("recetario: not found")
	// ErrDuplicateEmail is returned when registering with an email that
	// already has an account.
	ErrDuplicateEmail = errors.New("recetario: email already registered")
	// ErrInvalidVote is returned when a vote value is not +1 or -1.
	ErrInvalidVote = errors.New("recetario: vote must be 1 or -1")
)

// notFound maps sql.ErrNoRows to ErrNotFound so callers never match on
// driver-level sentinels.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. modernc.org/sqlite does not export a typed error for this,
// so the message is matched the way the rest of the ecosystem does.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
