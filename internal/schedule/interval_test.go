package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jaxki97/lussoautostudio/internal/schedule"
)

func TestHourRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    schedule.HourRange
		b    schedule.HourRange
		want bool
	}{
		{
			name: "partial overlap",
			a:    schedule.HourRange{Start: 8, End: 10},
			b:    schedule.HourRange{Start: 9, End: 11},
			want: true,
		},
		{
			name: "shared endpoint is not overlap",
			a:    schedule.HourRange{Start: 8, End: 10},
			b:    schedule.HourRange{Start: 10, End: 12},
			want: false,
		},
		{
			name: "identical intervals overlap",
			a:    schedule.HourRange{Start: 8, End: 10},
			b:    schedule.HourRange{Start: 8, End: 10},
			want: true,
		},
		{
			name: "contained interval overlaps",
			a:    schedule.HourRange{Start: 8, End: 14},
			b:    schedule.HourRange{Start: 10, End: 11},
			want: true,
		},
		{
			name: "candidate reaching into a booking from outside overlaps",
			a:    schedule.HourRange{Start: 12, End: 15},
			b:    schedule.HourRange{Start: 13, End: 17},
			want: true,
		},
		{
			name: "fully disjoint",
			a:    schedule.HourRange{Start: 8, End: 9},
			b:    schedule.HourRange{Start: 15, End: 17},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))

			// The predicate is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestNewHourRange(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		wantErr bool
	}{
		{name: "valid range", start: 8, end: 10, wantErr: false},
		{name: "zero-length range rejected", start: 10, end: 10, wantErr: true},
		{name: "inverted range rejected", start: 12, end: 9, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schedule.NewHourRange(tt.start, tt.end)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.start, got.Start)
				assert.Equal(t, tt.end, got.End)
			}
		})
	}
}

func TestHourRange_Within(t *testing.T) {
	tests := []struct {
		name  string
		r     schedule.HourRange
		open  int
		close int
		want  bool
	}{
		{name: "fits exactly", r: schedule.HourRange{Start: 8, End: 20}, open: 8, close: 20, want: true},
		{name: "inside the window", r: schedule.HourRange{Start: 9, End: 12}, open: 8, close: 20, want: true},
		{name: "starts before opening", r: schedule.HourRange{Start: 7, End: 9}, open: 8, close: 20, want: false},
		{name: "ends after closing", r: schedule.HourRange{Start: 18, End: 21}, open: 8, close: 20, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Within(tt.open, tt.close))
		})
	}
}

func TestHourLabel(t *testing.T) {
	assert.Equal(t, "08:00", schedule.HourLabel(8))
	assert.Equal(t, "20:00", schedule.HourLabel(20))
}
