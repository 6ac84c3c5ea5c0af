package mailer

import (
	"fmt"
	"time"
)

// AppointmentEmail holds the details interpolated into appointment emails.
type AppointmentEmail struct {
	ClientName  string
	ServiceName string
	StylistName string
	StartTime   time.Time
}

// AppointmentMessage renders the subject and body for a notification type.
// Unknown types fall back to a generic update message.
func AppointmentMessage(kind string, e AppointmentEmail) (subject, body string) {
	when := e.StartTime.Format("Monday, January 2 at 15:04")

	switch kind {
	case "booked":
		subject = "Your appointment request was received"
		body = fmt.Sprintf(
			"Hi %s,\n\nWe received your booking for %s with %s on %s.\nWe'll email you again once it is confirmed.\n\nSee you soon!",
			e.ClientName, e.ServiceName, e.StylistName, when)
	case "confirmed":
		subject = "Your appointment is confirmed"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour %s appointment with %s on %s is confirmed.\n\nSee you soon!",
			e.ClientName, e.ServiceName, e.StylistName, when)
	case "cancelled":
		subject = "Your appointment was cancelled"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour %s appointment with %s on %s has been cancelled.\nYou can book a new time any moment.",
			e.ClientName, e.ServiceName, e.StylistName, when)
	case "reminder":
		subject = "Appointment reminder"
		body = fmt.Sprintf(
			"Hi %s,\n\nThis is a reminder of your %s appointment with %s on %s.",
			e.ClientName, e.ServiceName, e.StylistName, when)
	default:
		subject = "Appointment update"
		body = fmt.Sprintf(
			"Hi %s,\n\nThere is an update on your %s appointment with %s on %s.",
			e.ClientName, e.ServiceName, e.StylistName, when)
	}
	return subject, body
}
