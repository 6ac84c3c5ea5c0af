package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBookingPastDateWins(t *testing.T) {
	hours := testHours()
	now := at(12, 0)

	// 10:00 today is already gone; also overlaps an existing booking, but the
	// past-date check reports first.
	existing := []BusyAppointment{{ID: "a1", Status: "confirmed", Interval: span(10, 0, 11, 0)}}
	err := CheckBooking(now, hours, at(10, 0), 30*time.Minute, existing, "")
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestCheckBookingOutOfHours(t *testing.T) {
	hours := testHours()
	now := at(8, 0)

	// Ends 20:15, past closing.
	err := CheckBooking(now, hours, at(19, 45), 30*time.Minute, nil, "")
	assert.ErrorIs(t, err, ErrOutOfHours)

	// Before opening.
	err = CheckBooking(now, hours, at(8, 30), 30*time.Minute, nil, "")
	assert.ErrorIs(t, err, ErrOutOfHours)

	// Exactly fills the last slot of the day.
	err = CheckBooking(now, hours, at(19, 30), 30*time.Minute, nil, "")
	assert.NoError(t, err)
}

func TestCheckBookingConflict(t *testing.T) {
	hours := testHours()
	now := at(8, 0)
	first := BusyAppointment{ID: "a1", Status: "pending", Interval: span(10, 0, 10, 45)}

	err := CheckBooking(now, hours, at(10, 30), 30*time.Minute, []BusyAppointment{first}, "")
	assert.ErrorIs(t, err, ErrConflict)

	// Cancelling the first booking frees the range.
	first.Status = "cancelled"
	err = CheckBooking(now, hours, at(10, 30), 30*time.Minute, []BusyAppointment{first}, "")
	assert.NoError(t, err)
}

func TestCheckBookingIgnoresInactiveStatuses(t *testing.T) {
	hours := testHours()
	now := at(8, 0)

	for _, status := range []string{"cancelled", "completed", "no-show"} {
		existing := []BusyAppointment{{ID: "a1", Status: status, Interval: span(14, 0, 15, 0)}}
		err := CheckBooking(now, hours, at(14, 0), 60*time.Minute, existing, "")
		assert.NoError(t, err, "status %s must not block", status)
	}
}

func TestCheckBookingExcludesSelfOnReschedule(t *testing.T) {
	hours := testHours()
	now := at(8, 0)
	existing := []BusyAppointment{{ID: "self", Status: "confirmed", Interval: span(15, 0, 16, 0)}}

	// Moving "self" 30 minutes later still overlaps its old interval, which
	// must not count as a conflict.
	err := CheckBooking(now, hours, at(15, 30), 60*time.Minute, existing, "self")
	assert.NoError(t, err)

	err = CheckBooking(now, hours, at(15, 30), 60*time.Minute, existing, "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCheckBookingBackToBackAllowed(t *testing.T) {
	hours := testHours()
	now := at(8, 0)
	existing := []BusyAppointment{{ID: "a1", Status: "confirmed", Interval: span(10, 0, 11, 0)}}

	err := CheckBooking(now, hours, at(11, 0), 30*time.Minute, existing, "")
	assert.NoError(t, err)

	err = CheckBooking(now, hours, at(9, 30), 30*time.Minute, existing, "")
	require.NoError(t, err)
}

func TestCheckBookingRejectsNonPositiveDuration(t *testing.T) {
	err := CheckBooking(at(8, 0), testHours(), at(10, 0), 0, nil, "")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
