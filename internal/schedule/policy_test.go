package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaxki97/lussoautostudio/config"
	"github.com/Jaxki97/lussoautostudio/internal/schedule"
)

func testPolicy() schedule.Policy {
	cfg := &config.Config{}
	cfg.Schedule.OpenHour = 8
	cfg.Schedule.CloseHour = 20
	cfg.Schedule.BookingWindowDays = 30

	return schedule.NewPolicy(cfg)
}

func day(value string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		panic(err)
	}

	return parsed
}

func TestPolicy_IsBookableDate(t *testing.T) {
	policy := testPolicy()

	tests := []struct {
		name       string
		date       time.Time
		today      time.Time
		wantOK     bool
		wantReason string
	}{
		{
			name:   "upcoming saturday",
			date:   day("2025-06-07"),
			today:  day("2025-06-02"),
			wantOK: true,
		},
		{
			name:   "upcoming sunday",
			date:   day("2025-06-08"),
			today:  day("2025-06-02"),
			wantOK: true,
		},
		{
			name:   "today itself when today is a saturday",
			date:   day("2025-06-07"),
			today:  day("2025-06-07"),
			wantOK: true,
		},
		{
			name:       "monday rejected as weekday",
			date:       day("2025-06-09"),
			today:      day("2025-06-02"),
			wantOK:     false,
			wantReason: schedule.ReasonWeekday,
		},
		{
			name:       "yesterday rejected as past even on a weekend",
			date:       day("2025-05-31"),
			today:      day("2025-06-02"),
			wantOK:     false,
			wantReason: schedule.ReasonPast,
		},
		{
			name:   "saturday exactly at the horizon is bookable",
			date:   day("2025-07-05"),
			today:  day("2025-06-05"),
			wantOK: true,
		},
		{
			name:       "sunday one day past the horizon rejected",
			date:       day("2025-07-06"),
			today:      day("2025-06-05"),
			wantOK:     false,
			wantReason: schedule.ReasonTooFar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := policy.IsBookableDate(tt.date, tt.today)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestParseDay(t *testing.T) {
	parsed, err := schedule.ParseDay("2025-06-08")
	require.NoError(t, err)

	// Parsed as a UTC calendar day: the weekday must not drift with the
	// server's local time zone.
	assert.Equal(t, time.Sunday, parsed.Weekday())
	assert.Equal(t, time.UTC, parsed.Location())

	_, err = schedule.ParseDay("08/06/2025")
	assert.Error(t, err)

	_, err = schedule.ParseDay("")
	assert.Error(t, err)
}

func TestCatalog_DurationFor(t *testing.T) {
	catalog := schedule.NewCatalog()

	duration, ok := catalog.DurationFor("Full Detail")
	require.True(t, ok)
	assert.Equal(t, 4, duration)

	_, ok = catalog.DurationFor("Unlisted Service")
	assert.False(t, ok)

	assert.NotEmpty(t, catalog.Offerings())
}
