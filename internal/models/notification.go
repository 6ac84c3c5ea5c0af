package models

import "time"

// Notification type and delivery state enums.
type NotificationType string

const (
	NotificationBooked    NotificationType = "booked"
	NotificationConfirmed NotificationType = "confirmed"
	NotificationCancelled NotificationType = "cancelled"
	NotificationReminder  NotificationType = "reminder"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification records one message about an appointment sent to a user.
type Notification struct {
	BaseModel
	AppointmentID string             `gorm:"size:36;index" json:"appointmentId"`
	UserID        string             `gorm:"size:36;index" json:"userId"`
	Type          NotificationType   `gorm:"size:30" json:"type"`
	Channel       string             `gorm:"size:30;default:'email'" json:"channel"`
	Status        NotificationStatus `gorm:"size:30;default:'pending'" json:"status"`
	SentAt        *time.Time         `json:"sentAt,omitempty"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	User        User        `gorm:"foreignKey:UserID" json:"-"`
}
