package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHours() BusinessHours {
	return DefaultBusinessHours(lima)
}

func TestSlotsFullOpenDay(t *testing.T) {
	window := testHours().Window(at(0, 0))
	slots, err := Slots(window, 30*time.Minute, 30*time.Minute, nil)
	require.NoError(t, err)

	got := SlotTimes(slots)
	require.Len(t, got, 22)
	assert.Equal(t, "09:00", got[0])
	assert.Equal(t, "09:30", got[1])
	assert.Equal(t, "19:30", got[21])
}

func TestSlotsExcludeBookedRange(t *testing.T) {
	window := testHours().Window(at(0, 0))
	busy := []Interval{span(10, 0, 11, 0)}

	slots, err := Slots(window, 30*time.Minute, 30*time.Minute, busy)
	require.NoError(t, err)
	got := SlotTimes(slots)

	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "10:30")
	assert.Contains(t, got, "09:30")
	assert.Contains(t, got, "11:00")
	assert.Len(t, got, 20)
}

func TestSlotsMustFitBeforeClosing(t *testing.T) {
	window := testHours().Window(at(0, 0))

	// A 45-minute service can't start at 19:30 (would end 20:15).
	slots, err := Slots(window, 30*time.Minute, 45*time.Minute, nil)
	require.NoError(t, err)
	got := SlotTimes(slots)
	assert.Equal(t, "19:00", got[len(got)-1])
}

func TestSlotsServiceLongerThanDay(t *testing.T) {
	window := testHours().Window(at(0, 0))
	slots, err := Slots(window, 30*time.Minute, 12*time.Hour, nil)
	require.NoError(t, err)
	assert.Empty(t, SlotTimes(slots))
}

func TestSlotsRestartable(t *testing.T) {
	window := testHours().Window(at(0, 0))
	busy := []Interval{span(12, 0, 13, 30)}
	slots, err := Slots(window, 30*time.Minute, 30*time.Minute, busy)
	require.NoError(t, err)

	first := SlotTimes(slots)
	second := SlotTimes(slots)
	assert.Equal(t, first, second)
}

func TestSlotsAscending(t *testing.T) {
	window := testHours().Window(at(0, 0))
	slots, err := Slots(window, 30*time.Minute, 60*time.Minute, nil)
	require.NoError(t, err)

	var prev time.Time
	for s := range slots {
		if !prev.IsZero() {
			assert.True(t, s.After(prev))
		}
		prev = s
	}
}

func TestSlotsInvalidInputs(t *testing.T) {
	window := testHours().Window(at(0, 0))

	_, err := Slots(window, 0, 30*time.Minute, nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = Slots(window, 30*time.Minute, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = Slots(Interval{Start: at(20, 0), End: at(9, 0)}, 30*time.Minute, 30*time.Minute, nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = Slots(window, 30*time.Minute, 30*time.Minute, []Interval{{Start: at(11, 0), End: at(10, 0)}})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
