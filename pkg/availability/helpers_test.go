package availability

import (
	"time"

	"venued/pkg/model"
)

// Fixed civil day shared by the engine tests so clock-time expectations are
// easy to read.
var testDay = time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func win(startHour, startMin, endHour, endMin int) TimeWindow {
	return TimeWindow{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func dayHorizon() TimeWindow {
	return TimeWindow{Start: testDay, End: testDay.Add(24 * time.Hour)}
}

func confirmed(id string, startHour, endHour int) *model.Reservation {
	return &model.Reservation{
		ID:        id,
		VenueID:   "venue-1",
		Status:    model.StatusConfirmed,
		StartTime: at(startHour, 0),
		EndTime:   at(endHour, 0),
	}
}

func buildTestIndex(reservations ...*model.Reservation) *Index {
	return BuildIndex("venue-1", reservations, dayHorizon(), DefaultOptions())
}
