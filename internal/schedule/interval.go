package schedule

import (
	"fmt"

	"github.com/Jaxki97/lussoautostudio/shared/failure"
)

// HourRange is a half-open interval of whole hours [Start, End). All booked and
// candidate time ranges in the system are expressed this way; overlap and
// containment are defined here and nowhere else.
type HourRange struct {
	Start int
	End   int
}

// NewHourRange builds a validated hour range. Zero-length and inverted ranges
// are rejected before they can reach the overlap predicate.
func NewHourRange(start, end int) (HourRange, error) {
	if end <= start {
		return HourRange{}, failure.BadRequestFromString(fmt.Sprintf("invalid hour range [%d, %d): end must be after start", start, end)) //nolint:wrapcheck
	}

	return HourRange{Start: start, End: end}, nil
}

// Overlaps reports whether the two ranges share at least one hour. A shared
// endpoint is not an overlap: [8,10) and [10,12) are disjoint.
func (r HourRange) Overlaps(other HourRange) bool {
	return r.Start < other.End && r.End > other.Start
}

// Within reports whether the range fits entirely inside the operating window
// [open, close).
func (r HourRange) Within(open, close int) bool {
	return r.Start >= open && r.End <= close
}

// Duration returns the range length in whole hours.
func (r HourRange) Duration() int {
	return r.End - r.Start
}

// HourLabel renders a whole hour as a display label, e.g. 8 -> "08:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
