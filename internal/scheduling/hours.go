package scheduling

import "time"

// Salon-wide booking policy. The 30-minute default duration is the documented
// choice for availability queries that name no service.
const (
	DefaultOpenMinute      = 9 * 60  // 09:00
	DefaultCloseMinute     = 20 * 60 // 20:00
	DefaultSlotStep        = 30 * time.Minute
	DefaultServiceDuration = 30 * time.Minute
)

// BusinessHours describes the bookable window of a salon day. Open and Close
// are minutes from midnight in the salon's local timezone.
type BusinessHours struct {
	OpenMinute      int
	CloseMinute     int
	SlotStep        time.Duration
	DefaultDuration time.Duration
	Location        *time.Location
}

// DefaultBusinessHours returns the standard 09:00-20:00 salon day with
// 30-minute slots in loc.
func DefaultBusinessHours(loc *time.Location) BusinessHours {
	return BusinessHours{
		OpenMinute:      DefaultOpenMinute,
		CloseMinute:     DefaultCloseMinute,
		SlotStep:        DefaultSlotStep,
		DefaultDuration: DefaultServiceDuration,
		Location:        loc,
	}
}

// Window returns the [open, close) interval for the calendar day containing t.
func (h BusinessHours) Window(t time.Time) Interval {
	t = t.In(h.Location)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, h.Location)
	return Interval{
		Start: midnight.Add(time.Duration(h.OpenMinute) * time.Minute),
		End:   midnight.Add(time.Duration(h.CloseMinute) * time.Minute),
	}
}

// Contains reports whether iv starts within business hours and ends no later
// than closing on the same day.
func (h BusinessHours) Contains(iv Interval) bool {
	w := h.Window(iv.Start)
	return !iv.Start.Before(w.Start) && iv.Start.Before(w.End) && !iv.End.After(w.End)
}

// Clock supplies the current salon-local time. Injected so availability and
// booking checks are deterministic under test.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return ClockFunc(func() time.Time { return time.Now().In(loc) })
}
