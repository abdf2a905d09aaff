package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required service or endpoint is missing.
	ErrNotConfigured = errors.New("not configured")

	// Backend Errors.

	// ErrRequestFailed indicates the backend answered with a non-2xx status
	// or could not be reached. Callers treat every failure the same way.
	ErrRequestFailed = errors.New("request failed")

	// ErrUnauthorized indicates the backend rejected the session token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the backend or the local limiter refused the call.
	ErrRateLimited = errors.New("rate limited")

	// ErrMalformedPayload indicates the backend returned a body that does not
	// match the expected shape.
	ErrMalformedPayload = errors.New("malformed payload")
)
