package scheduling

import (
	"iter"
	"time"
)

// Slots returns the candidate appointment start times for one salon day.
// Candidates begin at window.Start and advance by step; a candidate is kept
// only if the service fits entirely before window.End and its interval
// overlaps none of the busy intervals. The sequence is finite, strictly
// ascending and restartable: ranging over it twice yields the same times.
//
// busy must already be filtered to active (pending/confirmed) appointments.
// A service longer than the whole window yields an empty sequence, not an
// error.
func Slots(window Interval, step, serviceDuration time.Duration, busy []Interval) (iter.Seq[time.Time], error) {
	if !window.valid() || step <= 0 || serviceDuration <= 0 {
		return nil, ErrInvalidInterval
	}
	for _, b := range busy {
		if !b.valid() {
			return nil, ErrInvalidInterval
		}
	}

	return func(yield func(time.Time) bool) {
		for start := window.Start; !start.Add(serviceDuration).After(window.End); start = start.Add(step) {
			if isFree(NewInterval(start, serviceDuration), busy) {
				if !yield(start) {
					return
				}
			}
		}
	}, nil
}

func isFree(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		// Inputs were validated in Slots, the predicate cannot fail here.
		if hit, _ := Overlaps(candidate, b); hit {
			return false
		}
	}
	return true
}

// SlotTimes collects a slot sequence into salon-local "HH:MM" strings, the
// shape the availability endpoint returns.
func SlotTimes(slots iter.Seq[time.Time]) []string {
	out := []string{}
	for t := range slots {
		out = append(out, t.Format("15:04"))
	}
	return out
}
