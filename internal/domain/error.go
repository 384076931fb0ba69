package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound         = errors.New("entity not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotAuthenticated = errors.New("caller is not authenticated")

	// Access code taxonomy. These are deterministic for a given input and
	// must not be retried without changing the input.
	ErrCodeNotFound      = errors.New("access code not found")
	ErrCodeAlreadyUsed   = errors.New("access code already used")
	ErrCodeAlreadyExists = errors.New("access code already exists")

	// ErrStoreUnavailable is the only error kind where retrying the identical
	// request may succeed. Retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("store unavailable")

	// Infra-level errors surfaced by the postgres executor helpers.
	ErrInvalidExecContext = errors.New("invalid executor context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)
