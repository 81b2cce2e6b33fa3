package schedule

import (
	"fmt"
	"time"

	"github.com/Jaxki97/lussoautostudio/config"
	"github.com/Jaxki97/lussoautostudio/shared/constant"
	"github.com/Jaxki97/lussoautostudio/shared/failure"
)

// Reason codes for a date the calendar policy rejects. These travel to the
// client as data on the slot read path, never as errors.
const (
	ReasonPast    = "past"
	ReasonTooFar  = "too_far"
	ReasonWeekday = "weekday"
)

// Policy carries the studio's calendar rules: the daily operating window, the
// rolling booking horizon, and the weekend-only availability pattern. One
// instance is shared by the slot read path and the booking write path.
type Policy struct {
	OpenHour          int
	CloseHour         int
	BookingWindowDays int
}

func NewPolicy(cfg *config.Config) Policy {
	return Policy{
		OpenHour:          cfg.Schedule.OpenHour,
		CloseHour:         cfg.Schedule.CloseHour,
		BookingWindowDays: cfg.Schedule.BookingWindowDays,
	}
}

// IsBookableDate reports whether date can accept bookings as of today. Both
// arguments must be UTC midnights (see ParseDay / Clock.Today). The returned
// reason is one of the Reason* codes when the date is not bookable.
func (p Policy) IsBookableDate(date, today time.Time) (string, bool) {
	days := daysBetween(today, date)

	if days < 0 {
		return ReasonPast, false
	}

	if days > p.BookingWindowDays {
		return ReasonTooFar, false
	}

	if weekday := date.Weekday(); weekday != time.Saturday && weekday != time.Sunday {
		return ReasonWeekday, false
	}

	return "", true
}

// WithinOperatingHours reports whether the range fits the daily window.
func (p Policy) WithinOperatingHours(r HourRange) bool {
	return r.Within(p.OpenHour, p.CloseHour)
}

// ParseDay parses a YYYY-MM-DD string as a UTC calendar day. Parsing in UTC is
// deliberate: interpreting the date as a local-timezone instant can shift its
// weekday by one near midnight depending on server time zone.
func ParseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation(constant.DayFormat, value, time.UTC)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(fmt.Sprintf("date must be a valid calendar day in format %s", constant.DayFormat)) //nolint:wrapcheck
	}

	return day, nil
}

// daysBetween counts whole days from a to b, both taken at UTC midnight.
func daysBetween(a, b time.Time) int {
	aMid := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bMid := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	return int(bMid.Sub(aMid).Hours() / 24)
}
