package availability

import (
	"fmt"
	"sort"
	"time"

	"venued/pkg/model"
)

// Entry ties a reservation ID to its normalized time window.
type Entry struct {
	ReservationID string     `json:"reservation_id"`
	Window        TimeWindow `json:"window"`
}

// Index is an immutable, start-ordered view of one venue's active
// reservations for a query horizon. It is built fresh per query and is safe
// for concurrent readers.
type Index struct {
	VenueID  string
	Entries  []Entry
	Dropped  int
	Warnings []string
}

// BuildIndex normalizes an unordered reservation snapshot into a sorted index.
//
// Only reservations for venueID with status held or confirmed participate.
// Each window's end is the explicit end timestamp when present, otherwise
// start plus the record's duration, otherwise start plus the configured
// default. Windows overlapping the horizon are kept in full, never clipped.
// Records whose derived window has zero or negative duration are dropped and
// counted; callers must be able to observe the drop count.
func BuildIndex(venueID string, reservations []*model.Reservation, horizon TimeWindow, opts Options) *Index {
	idx := &Index{VenueID: venueID}

	for _, r := range reservations {
		if r == nil || r.VenueID != venueID || !r.Active() {
			continue
		}

		end := r.EndTime
		if end.IsZero() {
			d := opts.DefaultReservationDuration
			if r.DurationMin > 0 {
				d = time.Duration(r.DurationMin) * time.Minute
			}
			end = r.StartTime.Add(d)
		}

		w, err := NewTimeWindow(r.StartTime, end)
		if err != nil {
			idx.Dropped++
			idx.Warnings = append(idx.Warnings, fmt.Sprintf("reservation %s: %v", r.ID, err))
			continue
		}

		if !w.Overlaps(horizon) {
			continue
		}

		idx.Entries = append(idx.Entries, Entry{ReservationID: r.ID, Window: w})
	}

	// Deterministic order: start, then end, then ID.
	sort.Slice(idx.Entries, func(i, j int) bool {
		a, b := idx.Entries[i], idx.Entries[j]
		if !a.Window.Start.Equal(b.Window.Start) {
			return a.Window.Start.Before(b.Window.Start)
		}
		if !a.Window.End.Equal(b.Window.End) {
			return a.Window.End.Before(b.Window.End)
		}
		return a.ReservationID < b.ReservationID
	})

	return idx
}
