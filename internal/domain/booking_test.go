package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_Transitions(t *testing.T) {
	pending := Booking{Status: StatusPending}
	confirmed := Booking{Status: StatusConfirmed}
	cancelled := Booking{Status: StatusCancelled}

	assert.True(t, pending.CanBeConfirmed())
	assert.False(t, confirmed.CanBeConfirmed())
	assert.False(t, cancelled.CanBeConfirmed())

	assert.True(t, pending.CanBeCancelledByClient())
	assert.False(t, confirmed.CanBeCancelledByClient())
	assert.False(t, cancelled.CanBeCancelledByClient())

	assert.True(t, pending.CanBeCancelledByBusiness())
	assert.True(t, confirmed.CanBeCancelledByBusiness())
	assert.False(t, cancelled.CanBeCancelledByBusiness())
}

func TestBooking_IsActive(t *testing.T) {
	pending := Booking{Status: StatusPending}
	confirmed := Booking{Status: StatusConfirmed}
	cancelled := Booking{Status: StatusCancelled}

	assert.True(t, pending.IsActive())
	assert.True(t, confirmed.IsActive())
	assert.False(t, cancelled.IsActive())
	assert.True(t, cancelled.IsCancelled())
}

func TestParseBookingStatus(t *testing.T) {
	got, ok := ParseBookingStatus("confirmed")
	require.True(t, ok)
	assert.Equal(t, StatusConfirmed, got)

	_, ok = ParseBookingStatus("done")
	require.False(t, ok)
}

func TestBooking_Range(t *testing.T) {
	b := Booking{StartTime: ts(t, "10:00"), EndTime: ts(t, "10:45")}
	assert.Equal(t, Slot{Start: ts(t, "10:00"), End: ts(t, "10:45")}, b.Range())
}
