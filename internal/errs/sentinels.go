// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers. The HTTP layer maps these to
// status codes; anything else is treated as an internal failure.
var (
	// ErrNotFound indicates the requested record does not exist or belongs
	// to a different user (the two cases are indistinguishable on purpose).
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates rejected input: missing field, wrong type,
	// out-of-range value, or unknown enum value. The store is left untouched.
	ErrValidation = errors.New("validation")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates a temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates a unique constraint violation
	// (username or email taken).
	ErrAlreadyExists = errors.New("already exists")
)
