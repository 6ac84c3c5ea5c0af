// Package scheduling implements the salon's availability and booking-conflict
// logic: half-open time intervals, slot generation within business hours, the
// availability query over stylists, and the guard that every booking write
// must pass. It is pure computation; persistence and clock access come in
// through small interfaces so the whole package is testable without a database.
package scheduling

import "time"

// Interval is a half-open time range [Start, End). Two back-to-back
// appointments share an endpoint and do not conflict.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the interval covered by a booking starting at start and
// lasting d.
func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

func (iv Interval) valid() bool {
	return iv.End.After(iv.Start)
}

// Overlaps reports whether the two half-open intervals intersect:
// a.Start < b.End && b.Start < a.End. It returns ErrInvalidInterval if either
// interval has end <= start.
func Overlaps(a, b Interval) (bool, error) {
	if !a.valid() || !b.valid() {
		return false, ErrInvalidInterval
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End), nil
}
