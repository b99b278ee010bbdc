package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrNoProducts         = errors.New("no products in input")
	ErrTooManyProducts    = errors.New("too many products")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrEmptyCompletion    = errors.New("model returned empty completion")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrOperationFailed    = errors.New("operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid executor context")
)
