package domain

import "errors"

// Sentinel errors shared by the registry, services and HTTP layer.
// Wrap them with fmt.Errorf("...: %w", ...) and match with errors.Is.
var (
	ErrNotFound         = errors.New("event not found")
	ErrCapacityExceeded = errors.New("max participants reached")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateName    = errors.New("event name already in use")
)
