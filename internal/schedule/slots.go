package schedule

import (
	"fmt"
	"time"

	"github.com/Jaxki97/lussoautostudio/shared/failure"
)

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

// Plausible bounds for a requested duration; the catalog's fixed durations all
// fall inside this range.
const (
	MinDurationHours = 1
	MaxDurationHours = 8
)

// Slot is a candidate start-time offering shown to a customer. It is advisory:
// the booking write path re-validates everything from scratch at commit time.
type Slot struct {
	StartHour  int        `json:"start_hour"`
	EndHour    int        `json:"end_hour"`
	StartLabel string     `json:"start_label"`
	EndLabel   string     `json:"end_label"`
	Status     SlotStatus `json:"status"`
}

// Generator enumerates candidate start times for one date and duration against
// the calendar policy and the set of already-booked hour ranges.
type Generator struct {
	policy Policy
}

func NewGenerator(policy Policy) Generator {
	return Generator{policy: policy}
}

// Slots returns candidates ordered by ascending start hour. A date the
// calendar policy rejects yields an empty slice plus the policy reason; that
// is a normal answer, not an error. Candidates that would run past closing
// are omitted entirely rather than shown as unselectable.
//
// Each remaining candidate is classified with the interval overlap predicate
// against every booked range for the date. The candidate's own span matters:
// a start hour outside any booking is still blocked when the duration would
// reach into one.
func (g Generator) Slots(date, today time.Time, durationHours int, booked []HourRange) ([]Slot, string, error) {
	if durationHours < MinDurationHours || durationHours > MaxDurationHours {
		return nil, "", failure.BadRequestFromString(fmt.Sprintf("duration must be between %d and %d hours", MinDurationHours, MaxDurationHours)) //nolint:wrapcheck
	}

	if reason, ok := g.policy.IsBookableDate(date, today); !ok {
		return []Slot{}, reason, nil
	}

	slots := []Slot{}

	for hour := g.policy.OpenHour; hour+durationHours <= g.policy.CloseHour; hour++ {
		candidate := HourRange{Start: hour, End: hour + durationHours}

		status := SlotAvailable

		for _, taken := range booked {
			if candidate.Overlaps(taken) {
				status = SlotBooked

				break
			}
		}

		slots = append(slots, Slot{
			StartHour:  candidate.Start,
			EndHour:    candidate.End,
			StartLabel: HourLabel(candidate.Start),
			EndLabel:   HourLabel(candidate.End),
			Status:     status,
		})
	}

	return slots, "", nil
}
