package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    Weekday
		wantErr bool
	}{
		{input: "monday", want: Monday},
		{input: "Sunday", want: Sunday},
		{input: "  friday ", want: Friday},
		{input: "SATURDAY", want: Saturday},
		{input: "someday", wantErr: true},
		{input: "", wantErr: true},
		{input: "lunes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownWeekday)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekday_NextOccurrence(t *testing.T) {
	// 2025-10-15 - среда
	ref := time.Date(2025, 10, 15, 11, 30, 0, 0, time.Local)

	tests := []struct {
		name    string
		weekday Weekday
		want    time.Time
	}{
		{name: "same day returns same date", weekday: Wednesday, want: time.Date(2025, 10, 15, 0, 0, 0, 0, time.Local)},
		{name: "next day", weekday: Thursday, want: time.Date(2025, 10, 16, 0, 0, 0, 0, time.Local)},
		{name: "end of week", weekday: Sunday, want: time.Date(2025, 10, 19, 0, 0, 0, 0, time.Local)},
		{name: "wraps to next week", weekday: Tuesday, want: time.Date(2025, 10, 21, 0, 0, 0, 0, time.Local)},
		{name: "monday wraps", weekday: Monday, want: time.Date(2025, 10, 20, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.weekday.NextOccurrence(ref)
			assert.Equal(t, tt.want, got)

			// Результат всегда в пределах 0-6 дней от опорной даты
			diff := got.Sub(time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()))
			assert.GreaterOrEqual(t, diff, time.Duration(0))
			assert.LessOrEqual(t, diff, 6*24*time.Hour)
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, Wednesday, WeekdayOf(time.Date(2025, 10, 15, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2025, 10, 19, 23, 59, 0, 0, time.Local)))
}

func TestWeekday_Order(t *testing.T) {
	assert.Equal(t, 0, Monday.Order())
	assert.Equal(t, 6, Sunday.Order())
}
