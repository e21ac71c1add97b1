package queue

import "errors"

var (
	// ErrItemNotFound indicates the requested item id is not in the queue.
	ErrItemNotFound = errors.New("import item not found")

	// ErrDuplicate indicates the destination already has a record tagged
	// with this source id. Hard stop, never retried.
	ErrDuplicate = errors.New("already imported")

	// ErrNoValidRendition indicates the source reported no downloadable
	// rendition once the non-distributable source class was filtered out.
	ErrNoValidRendition = errors.New("no downloadable rendition")

	// ErrInvalidTransition indicates an attempted stage change that the
	// state machine does not allow.
	ErrInvalidTransition = errors.New("invalid stage transition")
)
