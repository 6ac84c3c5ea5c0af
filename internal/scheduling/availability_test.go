package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDirectory struct {
	services map[string]Service
	stylists []Stylist
}

func (d *fakeDirectory) FindService(_ context.Context, id string) (*Service, error) {
	if svc, ok := d.services[id]; ok {
		return &svc, nil
	}
	return nil, nil
}

func (d *fakeDirectory) FindStylist(_ context.Context, id string) (*Stylist, error) {
	for _, st := range d.stylists {
		if st.ID == id {
			return &st, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) ListStylists(_ context.Context) ([]Stylist, error) {
	return d.stylists, nil
}

type fakeSource struct {
	busy map[string][]Interval
}

func (s *fakeSource) BusyIntervals(_ context.Context, stylistID string, _ Interval) ([]Interval, error) {
	return s.busy[stylistID], nil
}

func newTestAvailability(dir *fakeDirectory, src *fakeSource, now time.Time) *Availability {
	clock := ClockFunc(func() time.Time { return now })
	return NewAvailability(dir, src, clock, testHours(), zap.NewNop())
}

func TestAvailabilityAllStylists(t *testing.T) {
	dir := &fakeDirectory{
		services: map[string]Service{"cut": {ID: "cut", Name: "Haircut", Duration: 30 * time.Minute}},
		stylists: []Stylist{{ID: "s1", Name: "Alba"}, {ID: "s2", Name: "Rocio"}},
	}
	src := &fakeSource{busy: map[string][]Interval{
		"s1": {span(10, 0, 11, 0)},
	}}
	avail := newTestAvailability(dir, src, at(8, 0))

	res, err := avail.Get(context.Background(), AvailabilityQuery{Date: "2030-06-10", ServiceID: "cut"})
	require.NoError(t, err)

	assert.Equal(t, "2030-06-10", res.Date)
	assert.Equal(t, "Haircut", res.ServiceName)
	assert.Equal(t, 30, res.DurationMinutes)
	require.Len(t, res.Stylists, 2)

	// Resolution order preserved.
	assert.Equal(t, "s1", res.Stylists[0].StylistID)
	assert.Equal(t, "s2", res.Stylists[1].StylistID)

	assert.NotContains(t, res.Stylists[0].Slots, "10:00")
	assert.NotContains(t, res.Stylists[0].Slots, "10:30")
	assert.Contains(t, res.Stylists[0].Slots, "11:00")
	assert.Len(t, res.Stylists[1].Slots, 22)
}

func TestAvailabilitySingleStylist(t *testing.T) {
	dir := &fakeDirectory{stylists: []Stylist{{ID: "s1", Name: "Alba"}, {ID: "s2", Name: "Rocio"}}}
	avail := newTestAvailability(dir, &fakeSource{}, at(8, 0))

	res, err := avail.Get(context.Background(), AvailabilityQuery{Date: "2030-06-10", StylistID: "s2"})
	require.NoError(t, err)
	require.Len(t, res.Stylists, 1)
	assert.Equal(t, "Rocio", res.Stylists[0].StylistName)
	// No service given: documented 30-minute default.
	assert.Equal(t, 30, res.DurationMinutes)
}

func TestAvailabilityDeterministic(t *testing.T) {
	dir := &fakeDirectory{stylists: []Stylist{{ID: "s1", Name: "Alba"}}}
	src := &fakeSource{busy: map[string][]Interval{"s1": {span(9, 0, 9, 30), span(13, 0, 14, 0)}}}
	avail := newTestAvailability(dir, src, at(8, 0))

	q := AvailabilityQuery{Date: "2030-06-10"}
	first, err := avail.Get(context.Background(), q)
	require.NoError(t, err)
	second, err := avail.Get(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvailabilityRejectsBadDates(t *testing.T) {
	dir := &fakeDirectory{stylists: []Stylist{{ID: "s1", Name: "Alba"}}}
	avail := newTestAvailability(dir, &fakeSource{}, at(8, 0))

	_, err := avail.Get(context.Background(), AvailabilityQuery{Date: "10-06-2030"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = avail.Get(context.Background(), AvailabilityQuery{Date: "2030-06-09"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Today is fine even though part of the day has passed.
	_, err = avail.Get(context.Background(), AvailabilityQuery{Date: "2030-06-10"})
	assert.NoError(t, err)
}

func TestAvailabilityUnknownReferences(t *testing.T) {
	dir := &fakeDirectory{stylists: []Stylist{{ID: "s1", Name: "Alba"}}}
	avail := newTestAvailability(dir, &fakeSource{}, at(8, 0))

	_, err := avail.Get(context.Background(), AvailabilityQuery{Date: "2030-06-10", ServiceID: "nope"})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = avail.Get(context.Background(), AvailabilityQuery{Date: "2030-06-10", StylistID: "nope"})
	assert.ErrorIs(t, err, ErrStylistNotFound)
}
