package domain

import "errors"

var (
	// ErrInputNotFound is returned when the raw price list does not exist
	ErrInputNotFound = errors.New("raw price list not found")

	// ErrBrandNotFound is returned when a requested brand bucket does not exist
	ErrBrandNotFound = errors.New("brand not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrRelayFailure is returned when the contact form relay rejects a submission
	ErrRelayFailure = errors.New("contact relay request failed")

	// ErrRelayNotConfigured is returned when no contact recipient is configured
	ErrRelayNotConfigured = errors.New("contact relay not configured")
)
