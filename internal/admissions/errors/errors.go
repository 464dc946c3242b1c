package errors

import "errors"

var (
	// ErrLockBusy means another admission attempt holds the venue's
	// critical section.
	ErrLockBusy = errors.New("venue admission lock is held by another request")

	ErrInvalidTimeRange = errors.New("end time must be after start time")
)
