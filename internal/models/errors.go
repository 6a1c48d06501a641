package models

import "errors"

// Error taxonomy shared by services and handlers. Repositories and services
// wrap these sentinels; handlers translate them to HTTP statuses. Anything
// not matching a sentinel is an upstream/datastore failure and surfaces
// as an internal error. Nothing is retried.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the acting user does not own the resource.
	ErrUnauthorized = errors.New("not authorized")

	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("invalid input")

	// ErrConflict means a uniqueness constraint fired. For toggle relations
	// this is benign (the row already encodes the desired state) and is not
	// surfaced to callers.
	ErrConflict = errors.New("already exists")
)
