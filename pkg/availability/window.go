package availability

import (
	"fmt"
	"time"
)

// TimeWindow is an immutable half-open interval [Start, End) in absolute time.
// An instant equal to End is outside the window.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeWindow validates the start < end invariant.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !start.Before(end) {
		return TimeWindow{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidWindow,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeWindow{Start: start, End: end}, nil
}

// Overlaps reports whether the two half-open intervals intersect.
// Windows that merely touch at a boundary do not overlap.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Touches reports whether the windows are back-to-back at either boundary.
func (w TimeWindow) Touches(o TimeWindow) bool {
	return w.End.Equal(o.Start) || o.End.Equal(w.Start)
}

// Contains reports whether t falls inside the window: Start is inclusive,
// End is exclusive.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
