package store

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a mutation fails its ownership precondition.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateUsername is returned when registering a username that is taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateID is returned when a record is created with an id that is already in use.
	ErrDuplicateID = errors.New("duplicate id")
)
