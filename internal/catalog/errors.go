package catalog

import "errors"

var (
	// ErrRetriesExhausted indicates quota rejections persisted past the
	// retry ceiling; the whole enumeration is aborted.
	ErrRetriesExhausted = errors.New("quota retry limit exceeded")

	// ErrScanInProgress indicates an enumeration is already running.
	ErrScanInProgress = errors.New("scan already in progress")

	// ErrNoScan indicates no enumeration has completed yet.
	ErrNoScan = errors.New("no completed scan available")
)
