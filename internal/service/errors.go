package service

import "errors"

// Shared sentinels for the view services. Handlers translate these into
// redirects or inline messages; they never reach the wire as-is.
var (
	ErrSignInRequired = errors.New("you must be signed in to do that")
	ErrMissingFields  = errors.New("title and description are required")
	ErrEmptyComment   = errors.New("comment text is required")
	ErrInvalidVote    = errors.New("vote must be -1 or 1")
	ErrNotFound       = errors.New("resource not found")
)
