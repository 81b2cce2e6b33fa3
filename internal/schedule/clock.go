package schedule

import "time"

// Clock abstracts "what day is it" so booking-window decisions stay
// deterministic under test.
type Clock interface {
	// Today returns UTC midnight of the current calendar day.
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time {
	now := time.Now().UTC()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// NewSystemClock returns a Clock backed by the system time in UTC.
func NewSystemClock() Clock {
	return systemClock{}
}

// FixedClock is a Clock pinned to one day, for tests.
type FixedClock struct {
	Day time.Time
}

func (c FixedClock) Today() time.Time {
	return c.Day
}
