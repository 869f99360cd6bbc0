// Package apperr defines the error kinds shared across the service layer.
// Callers should use errors.Is to match these values; the HTTP layer maps
// each kind to a status code.
package apperr

import "errors"

var (
	// ErrValidation marks malformed input the caller can correct.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a uniqueness violation (username, email, task title).
	ErrConflict = errors.New("already taken")

	// ErrNotFound marks an unknown id, username, email or token.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an authorization denial. Kept distinct from
	// ErrNotFound so clients can tell "doesn't exist" from "exists but
	// you can't touch it".
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized marks a failed credential check (login or
	// current-password re-confirmation).
	ErrUnauthorized = errors.New("unauthorized")
)
