package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaxki97/lussoautostudio/internal/schedule"
)

func TestGenerator_Slots_BlocksByTrueOverlap(t *testing.T) {
	generator := schedule.NewGenerator(testPolicy())

	booked := []schedule.HourRange{{Start: 13, End: 17}}

	slots, reason, err := generator.Slots(day("2025-06-07"), day("2025-06-02"), 1, booked)
	require.NoError(t, err)
	assert.Empty(t, reason)

	// One-hour candidates from 08:00 through 19:00.
	require.Len(t, slots, 12)

	statusByHour := map[int]schedule.SlotStatus{}
	for _, slot := range slots {
		statusByHour[slot.StartHour] = slot.Status
	}

	for hour := 8; hour < 20; hour++ {
		want := schedule.SlotAvailable
		if hour >= 13 && hour < 17 {
			want = schedule.SlotBooked
		}

		assert.Equalf(t, want, statusByHour[hour], "hour %d", hour)
	}
}

func TestGenerator_Slots_DurationReachesIntoBooking(t *testing.T) {
	generator := schedule.NewGenerator(testPolicy())

	booked := []schedule.HourRange{{Start: 13, End: 17}}

	slots, reason, err := generator.Slots(day("2025-06-07"), day("2025-06-02"), 3, booked)
	require.NoError(t, err)
	assert.Empty(t, reason)

	statusByHour := map[int]schedule.SlotStatus{}
	for _, slot := range slots {
		statusByHour[slot.StartHour] = slot.Status
	}

	// Starting at 11:00 or 12:00 leaves the start hour itself free, but a
	// three-hour job would run into the 13:00 booking.
	assert.Equal(t, schedule.SlotAvailable, statusByHour[10])
	assert.Equal(t, schedule.SlotBooked, statusByHour[11])
	assert.Equal(t, schedule.SlotBooked, statusByHour[12])
	assert.Equal(t, schedule.SlotBooked, statusByHour[16])
	assert.Equal(t, schedule.SlotAvailable, statusByHour[17])
}

func TestGenerator_Slots_OmitsEndOfDayOverrun(t *testing.T) {
	generator := schedule.NewGenerator(testPolicy())

	slots, reason, err := generator.Slots(day("2025-06-07"), day("2025-06-02"), 4, nil)
	require.NoError(t, err)
	assert.Empty(t, reason)

	// Last fulfillable four-hour start is 16:00; nothing may end past closing.
	require.NotEmpty(t, slots)
	assert.Equal(t, 16, slots[len(slots)-1].StartHour)

	for _, slot := range slots {
		assert.LessOrEqual(t, slot.EndHour, 20)
	}
}

func TestGenerator_Slots_Ordering(t *testing.T) {
	generator := schedule.NewGenerator(testPolicy())

	slots, _, err := generator.Slots(day("2025-06-07"), day("2025-06-02"), 2, nil)
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.Greater(t, slots[i].StartHour, slots[i-1].StartHour)
	}
}

func TestGenerator_Slots_PolicyRejection(t *testing.T) {
	generator := schedule.NewGenerator(testPolicy())

	tests := []struct {
		name       string
		date       string
		today      string
		wantReason string
	}{
		{name: "weekday date", date: "2025-06-09", today: "2025-06-02", wantReason: schedule.ReasonWeekday},
		{name: "past date", date: "2025-05-31", today: "2025-06-02", wantReason: schedule.ReasonPast},
		{name: "beyond horizon", date: "2025-07-26", today: "2025-06-02", wantReason: schedule.ReasonTooFar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, reason, err := generator.Slots(day(tt.date), day(tt.today), 1, nil)

			// Policy rejection is a normal empty answer, not an error.
			require.NoError(t, err)
			assert.Empty(t, slots)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestGenerator_Slots_InvalidDuration(t *testing.T) {
	generator := schedule.NewGenerator(testPolicy())

	for _, duration := range []int{0, -1, 9} {
		_, _, err := generator.Slots(day("2025-06-07"), day("2025-06-02"), duration, nil)
		assert.Errorf(t, err, "duration %d", duration)
	}
}
