package vimeo

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for host API responses.
var (
	// ErrNotFound is returned when the video does not exist or is hidden.
	ErrNotFound = errors.New("video not found")

	// ErrUnauthorized is returned when the access token is rejected.
	ErrUnauthorized = errors.New("unauthorized: invalid or expired access token")

	// ErrRateLimited is returned when the host rejects a request over quota.
	ErrRateLimited = errors.New("rate limited: quota exceeded")

	// ErrNoResponse is returned when no HTTP response was received at all,
	// as opposed to a request the host rejected with a status code.
	ErrNoResponse = errors.New("no response from host")
)

// RateLimitError carries the host's advertised retry delay alongside
// ErrRateLimited. RetryAfter is zero when the host did not advertise one.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: quota exceeded (retry after %s)", e.RetryAfter)
	}
	return ErrRateLimited.Error()
}

// Is makes errors.Is(err, ErrRateLimited) match.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}
