package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessageHeaders(t *testing.T) {
	msg := buildMessage("no-reply@salon.local", "a@b.com", "Hello", "Body text")

	assert.Contains(t, msg, "From: no-reply@salon.local\r\n")
	assert.Contains(t, msg, "To: a@b.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "\r\n\r\nBody text\r\n")
}

func TestNewSMTPSenderDefaultsFrom(t *testing.T) {
	s := NewSMTPSender(" localhost ", " 1025 ", "  ")
	assert.Equal(t, "localhost:1025", s.addr)
	assert.Equal(t, "no-reply@salon.local", s.from)
}

func TestAppointmentMessage(t *testing.T) {
	e := AppointmentEmail{
		ClientName:  "Ana",
		ServiceName: "Haircut",
		StylistName: "Maria",
		StartTime:   time.Date(2030, 6, 10, 14, 30, 0, 0, time.UTC),
	}

	cases := []struct {
		kind    string
		subject string
	}{
		{"booked", "Your appointment request was received"},
		{"confirmed", "Your appointment is confirmed"},
		{"cancelled", "Your appointment was cancelled"},
		{"reminder", "Appointment reminder"},
		{"something-else", "Appointment update"},
	}
	for _, tc := range cases {
		subject, body := AppointmentMessage(tc.kind, e)
		assert.Equal(t, tc.subject, subject, tc.kind)
		assert.Contains(t, body, "Ana")
		assert.Contains(t, body, "Haircut")
		assert.Contains(t, body, "Maria")
		assert.Contains(t, body, "Monday, June 10 at 14:30")
	}
}
