// Package mail provides the outbound mail gateway.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
)

// Message represents a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender sends an email. Implementations report success or failure only;
// retries are the caller's concern (and out of scope here).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender implements Sender over plain SMTP with optional AUTH PLAIN.
type SMTPSender struct {
	host     string
	port     string
	from     string
	username string
	password string
}

// NewSMTPSender creates a new SMTP mail sender.
func NewSMTPSender(host, port, from, username, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		from:     from,
		username: username,
		password: password,
	}
}

// Send delivers the message through the configured SMTP server.
func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	payload := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		s.from, msg.To, msg.Subject, msg.Body,
	))

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(s.host+":"+s.port, auth, s.from, []string{msg.To}, payload); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}

	return nil
}
