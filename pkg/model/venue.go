package model

import "time"

// Venue is a bookable physical resource. OpenTime and CloseTime are venue-local
// civil times in HH:MM form and must not wrap past midnight; TimeZone is an
// IANA zone identifier resolved against the system tz database.
type Venue struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	City      string    `json:"city" bson:"city" validate:"required,min=2,max=50"`
	TimeZone  string    `json:"time_zone" bson:"time_zone" validate:"required,timezone"`
	OpenTime  string    `json:"open_time" bson:"open_time" validate:"required,valid_clock"`
	CloseTime string    `json:"close_time" bson:"close_time" validate:"required,valid_clock"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
