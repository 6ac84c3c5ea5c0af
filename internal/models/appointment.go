package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

// IsActive reports whether the appointment still occupies its stylist's time.
// Only pending and confirmed bookings count for overlap checks.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Appointment represents a booked interval for a stylist. ClientID is nil for
// walk-ins, which carry freeform contact fields instead.
type Appointment struct {
	BaseModel
	ClientID    *string           `gorm:"size:36;index" json:"clientId,omitempty"`
	StylistID   string            `gorm:"size:36;index;not null" json:"stylistId"`
	ServiceID   string            `gorm:"size:36;index;not null" json:"serviceId"`
	StartTime   time.Time         `gorm:"index" json:"startTime"`
	Status      AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Notes       string            `gorm:"type:text" json:"notes"`
	IsWalkIn    bool              `gorm:"default:false" json:"isWalkIn"`
	ClientName  string            `gorm:"size:100" json:"clientName,omitempty"`
	ClientPhone string            `gorm:"size:30" json:"clientPhone,omitempty"`
	ClientEmail string            `gorm:"size:255" json:"clientEmail,omitempty"`
	CreatedBy   string            `gorm:"size:36" json:"createdBy"`
	ModifiedBy  string            `gorm:"size:36" json:"modifiedBy"`

	// Relations
	Client  *User   `gorm:"foreignKey:ClientID" json:"-"`
	Stylist User    `gorm:"foreignKey:StylistID" json:"-"`
	Service Service `gorm:"foreignKey:ServiceID" json:"-"`
}

// EndTime is derived: start plus the booked service's duration. svc must be
// the appointment's own service.
func (a *Appointment) EndTime(svc *Service) time.Time {
	return a.StartTime.Add(svc.Duration())
}
