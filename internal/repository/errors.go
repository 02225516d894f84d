package repository

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when no row has the requested identifier
	ErrNotFound = errors.New("record not found")
	// ErrMissingID is returned when an update carries no identifier
	ErrMissingID = errors.New("identifier is required")
	// ErrInvalidSort is returned for sort parameters naming unknown fields
	ErrInvalidSort = errors.New("invalid sort parameter")
)
