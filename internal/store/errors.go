package store

import "errors"

// Rejection errors returned by store operations. Handlers map these to
// HTTP statuses with errors.Is; anything else is an infrastructure
// failure and the operation has left no partial state behind.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
)
