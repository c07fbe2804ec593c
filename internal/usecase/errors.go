package usecase

import "errors"

// Sentinel errors shared by the services. Handlers map these onto HTTP
// statuses; everything else surfaces as an internal error.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
