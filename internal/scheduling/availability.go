package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Service is the slice of the catalogue the scheduler needs.
type Service struct {
	ID       string
	Name     string
	Duration time.Duration
}

// Stylist is an opaque reference plus a display name.
type Stylist struct {
	ID   string
	Name string
}

// Directory resolves services and stylists. Implementations return (nil, nil)
// when the id does not exist (or the user is not a stylist); errors are
// reserved for lookup failures.
type Directory interface {
	FindService(ctx context.Context, id string) (*Service, error)
	FindStylist(ctx context.Context, id string) (*Stylist, error)
	ListStylists(ctx context.Context) ([]Stylist, error)
}

// AppointmentSource yields the occupied intervals of one stylist inside a day
// window, restricted to pending and confirmed appointments. Each interval's
// length comes from the booked service's own duration.
type AppointmentSource interface {
	BusyIntervals(ctx context.Context, stylistID string, window Interval) ([]Interval, error)
}

// AvailabilityQuery are the caller-supplied inputs. ServiceID and StylistID
// are optional; Date is a salon-local YYYY-MM-DD day.
type AvailabilityQuery struct {
	Date      string
	ServiceID string
	StylistID string
}

// StylistSlots is one stylist's free slot starts, ascending "HH:MM".
type StylistSlots struct {
	StylistID   string   `json:"stylistId"`
	StylistName string   `json:"stylistName"`
	Slots       []string `json:"availableSlots"`
}

// AvailabilityResult is the assembled answer for one day.
type AvailabilityResult struct {
	Date            string         `json:"date"`
	ServiceID       string         `json:"serviceId,omitempty"`
	ServiceName     string         `json:"serviceName,omitempty"`
	DurationMinutes int            `json:"serviceDuration"`
	Stylists        []StylistSlots `json:"stylists"`
}

// Availability answers "which slots are free" queries. It is read-only and
// deterministic against a fixed appointment set.
type Availability struct {
	dir    Directory
	appts  AppointmentSource
	clock  Clock
	hours  BusinessHours
	logger *zap.Logger
}

// NewAvailability wires the query orchestrator.
func NewAvailability(dir Directory, appts AppointmentSource, clock Clock, hours BusinessHours, logger *zap.Logger) *Availability {
	return &Availability{dir: dir, appts: appts, clock: clock, hours: hours, logger: logger}
}

// Get resolves the query to a duration and stylist set, then collects free
// slots per stylist in resolution order.
func (a *Availability) Get(ctx context.Context, q AvailabilityQuery) (*AvailabilityResult, error) {
	day, err := time.ParseInLocation("2006-01-02", q.Date, a.hours.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: want YYYY-MM-DD, got %q", ErrInvalidDate, q.Date)
	}

	now := a.clock.Now().In(a.hours.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.hours.Location)
	if day.Before(today) {
		return nil, fmt.Errorf("%w: %s is before today", ErrInvalidDate, q.Date)
	}

	duration := a.hours.DefaultDuration
	result := &AvailabilityResult{Date: q.Date}
	if q.ServiceID != "" {
		svc, err := a.dir.FindService(ctx, q.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("resolve service: %w", err)
		}
		if svc == nil {
			return nil, ErrServiceNotFound
		}
		duration = svc.Duration
		result.ServiceID = svc.ID
		result.ServiceName = svc.Name
	}
	result.DurationMinutes = int(duration / time.Minute)

	var stylists []Stylist
	if q.StylistID != "" {
		st, err := a.dir.FindStylist(ctx, q.StylistID)
		if err != nil {
			return nil, fmt.Errorf("resolve stylist: %w", err)
		}
		if st == nil {
			return nil, ErrStylistNotFound
		}
		stylists = []Stylist{*st}
	} else {
		stylists, err = a.dir.ListStylists(ctx)
		if err != nil {
			return nil, fmt.Errorf("list stylists: %w", err)
		}
	}

	window := a.hours.Window(day)
	result.Stylists = make([]StylistSlots, 0, len(stylists))
	for _, st := range stylists {
		busy, err := a.appts.BusyIntervals(ctx, st.ID, window)
		if err != nil {
			return nil, fmt.Errorf("busy intervals for stylist %s: %w", st.ID, err)
		}
		slots, err := Slots(window, a.hours.SlotStep, duration, busy)
		if err != nil {
			return nil, err
		}
		result.Stylists = append(result.Stylists, StylistSlots{
			StylistID:   st.ID,
			StylistName: st.Name,
			Slots:       SlotTimes(slots),
		})
	}

	a.logger.Debug("availability computed",
		zap.String("date", q.Date),
		zap.String("service_id", q.ServiceID),
		zap.Int("stylists", len(result.Stylists)),
	)
	return result, nil
}
