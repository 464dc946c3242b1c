package availability

import "time"

// Options are the engine's recognized knobs. The zero value is not usable;
// start from DefaultOptions and override.
type Options struct {
	// DefaultReservationDuration is applied when a reservation carries
	// neither an explicit end nor a duration.
	DefaultReservationDuration time.Duration

	// GridHourStep is the hour increment between grid cells. Normally 1.
	GridHourStep int

	// AdjacencyIsConflict treats back-to-back windows as conflicting.
	// Half-open semantics permit adjacency, so this is normally false.
	AdjacencyIsConflict bool
}

func DefaultOptions() Options {
	return Options{
		DefaultReservationDuration: 60 * time.Minute,
		GridHourStep:               1,
		AdjacencyIsConflict:        false,
	}
}
