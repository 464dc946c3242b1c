package model

import "time"

const (
	StatusHeld      = "held"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

// Reservation is a time-boxed claim on a venue. EndTime is optional: when it
// is the zero value the end is derived from DurationMin, and when both are
// absent the configured default reservation duration applies.
type Reservation struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID      string    `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	ServiceLabel string    `json:"service_label" bson:"service_label" validate:"required,min=2,max=100"`
	StartTime    time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime      time.Time `json:"end_time,omitempty" bson:"end_time,omitempty" validate:"omitempty,gtfield=StartTime"`
	DurationMin  int       `json:"duration_min,omitempty" bson:"duration_min,omitempty" validate:"omitempty,min=5,max=1440"`
	Status       string    `json:"status" bson:"status" validate:"required,oneof=held confirmed cancelled rejected"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Active reports whether the reservation participates in occupancy and
// conflict computation. Cancelled and rejected records do not.
func (r *Reservation) Active() bool {
	return r.Status == StatusHeld || r.Status == StatusConfirmed
}
