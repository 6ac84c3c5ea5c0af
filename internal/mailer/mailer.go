// Package mailer sends plain-text appointment emails over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers a single email.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail via unauthenticated SMTP, suitable for a local relay
// like Mailpit or an internal smarthost.
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender creates a sender for the given host/port, sending as from.
func NewSMTPSender(host, port, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@salon.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

func buildMessage(from, to, subject, body string) string {
	// Minimal RFC 5322 message; enough for most relays.
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
