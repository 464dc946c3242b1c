package availability

import (
	"fmt"
	"time"
)

// ClockTime is a venue-local wall-clock time of day.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(s string) (ClockTime, error) {
	var c ClockTime
	if len(s) != 5 || s[2] != ':' {
		return c, fmt.Errorf("%w: clock time %q is not in HH:MM form", ErrInvalidVenueConfig, s)
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &c.Hour, &c.Minute); err != nil {
		return c, fmt.Errorf("%w: clock time %q is not in HH:MM form", ErrInvalidVenueConfig, s)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return c, fmt.Errorf("%w: clock time %q out of range", ErrInvalidVenueConfig, s)
	}
	return c, nil
}

// MinuteOfDay collapses the clock time for ordering comparisons.
func (c ClockTime) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// LocalDate is a civil calendar date with no zone attached.
type LocalDate struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// ParseLocalDate parses a "2006-01-02" date string.
func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return LocalDate{}, fmt.Errorf("date %q is not in YYYY-MM-DD form: %w", s, err)
	}
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}, nil
}

// LocalDateOf projects an absolute instant onto its civil date in loc.
func LocalDateOf(t time.Time, loc *time.Location) LocalDate {
	y, m, d := t.In(loc).Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

// At resolves the civil (date, clock) pair to an absolute instant in loc.
// DST gaps and folds follow time.Date semantics.
func (d LocalDate) At(c ClockTime, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, loc)
}

func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// CivilTime projects an absolute instant onto venue-local wall-clock time.
func CivilTime(t time.Time, loc *time.Location) ClockTime {
	local := t.In(loc)
	return ClockTime{Hour: local.Hour(), Minute: local.Minute()}
}

// LoadZone resolves an IANA zone identifier against the real tz database,
// so daylight-saving transitions are handled rather than approximated with
// a fixed offset.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: time zone is empty", ErrInvalidVenueConfig)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown time zone %q", ErrInvalidVenueConfig, name)
	}
	return loc, nil
}
