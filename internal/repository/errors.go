package repository

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. Insert races on unique columns are resolved here rather than
// with in-process locking.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign-key
// violation, e.g. deleting a category that still has posts.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation
}
