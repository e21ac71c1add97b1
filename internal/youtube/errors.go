package youtube

import "errors"

// Sentinel errors for destination platform responses.
var (
	// ErrUnauthorized is returned when the API key is rejected.
	ErrUnauthorized = errors.New("unauthorized: invalid api key")

	// ErrNotFound is returned when the record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoResponse is returned when no HTTP response was received at all,
	// as opposed to a request the platform rejected with a status code.
	ErrNoResponse = errors.New("no response from platform")
)
