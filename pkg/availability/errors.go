package availability

import "errors"

var (
	// ErrInvalidWindow marks a derived reservation window with zero or
	// negative duration. Records violating it are dropped with a warning
	// during index construction, never propagated as a hard failure.
	ErrInvalidWindow = errors.New("time window start must be before end")

	// ErrInvalidVenueConfig marks a malformed venue operating window:
	// unparseable clock times, open at or after close, or an unknown
	// time zone. Surfaced to the caller.
	ErrInvalidVenueConfig = errors.New("invalid venue operating window")
)
