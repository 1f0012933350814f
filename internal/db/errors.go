package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrEmptyKey = errors.New("key must not be empty")
)
