package service

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to the HTTP layer. Anything not matching one of
// these is a store failure.
var (
	ErrMissingField       = errors.New("missing required field")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("missing bearer token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTimeRange   = errors.New("invalid time range: from must be <= to")
)

var (
	errAccountNotFound  = fmt.Errorf("account %w", ErrNotFound)
	errModuleNotFound   = fmt.Errorf("module %w", ErrNotFound)
	errExerciseNotFound = fmt.Errorf("exercise %w", ErrNotFound)
)

func missing(what string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, what)
}
