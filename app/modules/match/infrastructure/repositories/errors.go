package matchdb

import "errors"

var (
	// ErrNotFound means the match row does not exist.
	ErrNotFound = errors.New("match not found")
	// ErrNoRowsAffected means an update or delete matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
