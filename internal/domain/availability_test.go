package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaplan/booking-service/pkg/ptr"
	"github.com/citaplan/booking-service/pkg/types"
)

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func tsp(t *testing.T, s string) *types.TimeString {
	t.Helper()
	return ptr.Ptr(ts(t, s))
}

func TestDayAvailability_Validate(t *testing.T) {
	tests := []struct {
		name    string
		day     DayAvailability
		wantErr error
	}{
		{
			name: "full day ok",
			day: DayAvailability{
				MorningStart:   tsp(t, "08:00"),
				MorningEnd:     tsp(t, "12:00"),
				AfternoonStart: tsp(t, "14:00"),
				AfternoonEnd:   tsp(t, "18:00"),
				Active:         true,
			},
		},
		{
			name: "inactive day with no windows ok",
			day:  DayAvailability{Active: false},
		},
		{
			name: "inactive day with partial windows ok",
			day: DayAvailability{
				MorningStart: tsp(t, "09:00"),
				MorningEnd:   tsp(t, "13:00"),
				Active:       false,
			},
		},
		{
			name: "active day missing afternoon",
			day: DayAvailability{
				MorningStart: tsp(t, "08:00"),
				MorningEnd:   tsp(t, "12:00"),
				Active:       true,
			},
			wantErr: ErrIncompleteDay,
		},
		{
			name: "active day missing morning end",
			day: DayAvailability{
				MorningStart:   tsp(t, "08:00"),
				AfternoonStart: tsp(t, "14:00"),
				AfternoonEnd:   tsp(t, "18:00"),
				Active:         true,
			},
			wantErr: ErrIncompleteDay,
		},
		{
			name: "morning end before start",
			day: DayAvailability{
				MorningStart: tsp(t, "12:00"),
				MorningEnd:   tsp(t, "08:00"),
				Active:       false,
			},
			wantErr: ErrInvalidWindow,
		},
		{
			name: "empty morning window",
			day: DayAvailability{
				MorningStart:   tsp(t, "08:00"),
				MorningEnd:     tsp(t, "08:00"),
				AfternoonStart: tsp(t, "14:00"),
				AfternoonEnd:   tsp(t, "18:00"),
				Active:         true,
			},
			wantErr: ErrInvalidWindow,
		},
		{
			name: "afternoon starts before morning ends",
			day: DayAvailability{
				MorningStart:   tsp(t, "08:00"),
				MorningEnd:     tsp(t, "13:00"),
				AfternoonStart: tsp(t, "12:00"),
				AfternoonEnd:   tsp(t, "18:00"),
				Active:         true,
			},
			wantErr: ErrWindowsOverlap,
		},
		{
			name: "afternoon starts exactly at morning end ok",
			day: DayAvailability{
				MorningStart:   tsp(t, "08:00"),
				MorningEnd:     tsp(t, "12:00"),
				AfternoonStart: tsp(t, "12:00"),
				AfternoonEnd:   tsp(t, "18:00"),
				Active:         true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.day.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDayAvailability_Windows(t *testing.T) {
	day := DayAvailability{
		MorningStart:   tsp(t, "08:00"),
		MorningEnd:     tsp(t, "12:00"),
		AfternoonStart: tsp(t, "14:00"),
		AfternoonEnd:   tsp(t, "18:00"),
		Active:         true,
	}

	windows := day.Windows()
	require.Len(t, windows, 2)
	assert.Equal(t, Slot{Start: ts(t, "08:00"), End: ts(t, "12:00")}, windows[0])
	assert.Equal(t, Slot{Start: ts(t, "14:00"), End: ts(t, "18:00")}, windows[1])

	morningOnly := DayAvailability{
		MorningStart: tsp(t, "09:00"),
		MorningEnd:   tsp(t, "12:00"),
		Active:       true,
	}
	require.Len(t, morningOnly.Windows(), 1)

	empty := DayAvailability{Active: true}
	assert.Empty(t, empty.Windows())
}

func TestDefaultDayAvailability(t *testing.T) {
	for _, wd := range AllWeekdays {
		day := DefaultDayAvailability(42, wd)
		require.NoError(t, day.Validate())
		if wd == Sunday {
			assert.False(t, day.Active)
		} else {
			assert.True(t, day.Active)
		}
	}
}

func TestSlot_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Slot
		want bool
	}{
		{
			name: "identical slots overlap",
			a:    Slot{Start: ts(t, "08:00"), End: ts(t, "08:30")},
			b:    Slot{Start: ts(t, "08:00"), End: ts(t, "08:30")},
			want: true,
		},
		{
			name: "partial overlap",
			a:    Slot{Start: ts(t, "08:00"), End: ts(t, "09:00")},
			b:    Slot{Start: ts(t, "08:30"), End: ts(t, "09:30")},
			want: true,
		},
		{
			name: "contained slot overlaps",
			a:    Slot{Start: ts(t, "08:00"), End: ts(t, "10:00")},
			b:    Slot{Start: ts(t, "08:30"), End: ts(t, "09:00")},
			want: true,
		},
		{
			name: "back to back does not overlap",
			a:    Slot{Start: ts(t, "08:00"), End: ts(t, "08:30")},
			b:    Slot{Start: ts(t, "08:30"), End: ts(t, "09:00")},
			want: false,
		},
		{
			name: "disjoint slots do not overlap",
			a:    Slot{Start: ts(t, "08:00"), End: ts(t, "08:30")},
			b:    Slot{Start: ts(t, "10:00"), End: ts(t, "10:30")},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}
