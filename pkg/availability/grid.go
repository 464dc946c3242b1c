package availability

import (
	"fmt"
	"time"

	"venued/pkg/model"
)

// HourlyCell is one slot of the day visualization. HourLabel is the
// venue-local 24-hour "HH:00" string.
type HourlyCell struct {
	HourLabel string `json:"hour"`
	IsBooked  bool   `json:"is_booked"`
}

// DayGrid produces one cell per whole hour of the venue's operating window on
// the given civil date, from the opening hour to the closing hour inclusive
// of both endpoints. A cell is booked iff its one-hour slot overlaps any
// indexed window, using the same half-open overlap predicate as the conflict
// checker.
//
// Operating windows that are malformed or cross midnight yield
// ErrInvalidVenueConfig; overnight semantics are deliberately not guessed.
func DayGrid(idx *Index, venue *model.Venue, day LocalDate, opts Options) ([]HourlyCell, error) {
	open, err := ParseClock(venue.OpenTime)
	if err != nil {
		return nil, err
	}
	closing, err := ParseClock(venue.CloseTime)
	if err != nil {
		return nil, err
	}
	if open.MinuteOfDay() >= closing.MinuteOfDay() {
		return nil, fmt.Errorf("%w: open %s must be before close %s on the same day",
			ErrInvalidVenueConfig, open, closing)
	}

	loc, err := LoadZone(venue.TimeZone)
	if err != nil {
		return nil, err
	}

	step := opts.GridHourStep
	if step <= 0 {
		step = 1
	}

	var cells []HourlyCell
	for h := open.Hour; h <= closing.Hour; h += step {
		cellStart := day.At(ClockTime{Hour: h}, loc)
		slot := TimeWindow{Start: cellStart, End: cellStart.Add(time.Hour)}

		booked := false
		for _, e := range idx.Entries {
			if e.Window.Overlaps(slot) {
				booked = true
				break
			}
		}

		cells = append(cells, HourlyCell{
			HourLabel: fmt.Sprintf("%02d:00", h),
			IsBooked:  booked,
		})
	}

	return cells, nil
}
