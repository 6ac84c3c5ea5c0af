package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lima = time.FixedZone("PET", -5*3600)

func at(hour, min int) time.Time {
	return time.Date(2030, time.June, 10, hour, min, 0, 0, lima)
}

func span(h0, m0, h1, m1 int) Interval {
	return Interval{Start: at(h0, m0), End: at(h1, m1)}
}

func TestOverlapsSymmetry(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", span(9, 0, 10, 0), span(11, 0, 12, 0), false},
		{"identical", span(10, 0, 11, 0), span(10, 0, 11, 0), true},
		{"partial", span(10, 0, 10, 45), span(10, 30, 11, 0), true},
		{"contained", span(9, 0, 12, 0), span(10, 0, 10, 30), true},
		{"touching endpoints", span(9, 0, 10, 0), span(10, 0, 11, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Overlaps(tc.a, tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			mirrored, err := Overlaps(tc.b, tc.a)
			require.NoError(t, err)
			assert.Equal(t, got, mirrored, "overlap must be symmetric")
		})
	}
}

func TestOverlapsSelf(t *testing.T) {
	iv := span(14, 0, 14, 30)
	got, err := Overlaps(iv, iv)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestOverlapsRejectsDegenerateIntervals(t *testing.T) {
	good := span(9, 0, 10, 0)
	empty := Interval{Start: at(9, 0), End: at(9, 0)}
	inverted := Interval{Start: at(10, 0), End: at(9, 0)}

	for _, bad := range []Interval{empty, inverted} {
		_, err := Overlaps(good, bad)
		assert.ErrorIs(t, err, ErrInvalidInterval)
		_, err = Overlaps(bad, good)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	}
}
