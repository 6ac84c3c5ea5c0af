package scheduling

import (
	"fmt"
	"time"
)

// BusyAppointment is an existing booking as seen by the conflict guard. Its
// interval end must be computed from that appointment's own service duration.
type BusyAppointment struct {
	ID       string
	Status   string
	Interval Interval
}

func isActiveStatus(status string) bool {
	return status == "pending" || status == "confirmed"
}

// CheckBooking validates a proposed booking for a stylist. Checks run in a
// fixed order and the first violation is returned: past-date (ErrPastDate),
// business hours (ErrOutOfHours), then overlap against the stylist's active
// appointments (ErrConflict). excludeID skips one appointment, used when
// rescheduling so a booking never conflicts with itself.
//
// The caller must read existing appointments and persist the booking inside a
// single transaction; without serializable isolation or a database exclusion
// constraint on (stylist, time range), two concurrent requests can both pass
// this check.
func CheckBooking(now time.Time, hours BusinessHours, start time.Time, serviceDuration time.Duration, existing []BusyAppointment, excludeID string) error {
	if serviceDuration <= 0 {
		return ErrInvalidInterval
	}
	candidate := NewInterval(start.In(hours.Location), serviceDuration)

	if candidate.Start.Before(now.In(hours.Location)) {
		return ErrPastDate
	}

	if !hours.Contains(candidate) {
		return fmt.Errorf("%w: appointment would run %s-%s",
			ErrOutOfHours, candidate.Start.Format("15:04"), candidate.End.Format("15:04"))
	}

	for _, appt := range existing {
		if appt.ID == excludeID || !isActiveStatus(appt.Status) {
			continue
		}
		hit, err := Overlaps(candidate, appt.Interval)
		if err != nil {
			return err
		}
		if hit {
			return fmt.Errorf("%w: overlaps appointment starting %s",
				ErrConflict, appt.Interval.Start.Format("2006-01-02 15:04"))
		}
	}
	return nil
}
