package availability

import "time"

// OccupancyStatus is the computed state of a venue at one instant. It is
// recomputed on every query and never stored. ChangesAt and TimeRemaining are
// absent when no further state transition exists within the horizon.
type OccupancyStatus struct {
	IsOccupied          bool           `json:"is_occupied"`
	ActiveReservationID string         `json:"active_reservation_id,omitempty"`
	ChangesAt           *time.Time     `json:"changes_at,omitempty"`
	TimeRemaining       *time.Duration `json:"time_remaining,omitempty"`
}

// Evaluate derives the occupancy state at now from a sorted index.
//
// The boundary rule is exact half-open semantics: now equal to a window's
// start is occupied, now equal to its end is free. Overlapping stored
// reservations are a data-integrity anomaly the conflict checker should have
// prevented; the evaluator tolerates them by picking the earliest-starting
// containing window, which is the first match in start order.
func Evaluate(idx *Index, now time.Time) OccupancyStatus {
	for _, e := range idx.Entries {
		if e.Window.Contains(now) {
			remaining := e.Window.End.Sub(now)
			end := e.Window.End
			return OccupancyStatus{
				IsOccupied:          true,
				ActiveReservationID: e.ReservationID,
				ChangesAt:           &end,
				TimeRemaining:       &remaining,
			}
		}
	}

	for _, e := range idx.Entries {
		if e.Window.Start.After(now) {
			remaining := e.Window.Start.Sub(now)
			start := e.Window.Start
			return OccupancyStatus{
				IsOccupied:    false,
				ChangesAt:     &start,
				TimeRemaining: &remaining,
			}
		}
	}

	// Free for the remainder of the horizon.
	return OccupancyStatus{IsOccupied: false}
}
