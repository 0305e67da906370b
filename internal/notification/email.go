// internal/notification/email.go
// Email delivery behind a small interface so the provider can be swapped
// by configuration: SendGrid in production, SMTP for self-hosted setups,
// mock for development.

package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// EmailService sends transactional email
type EmailService interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SendGridEmailService sends email through the SendGrid API
type SendGridEmailService struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

// NewSendGridEmailService creates a SendGrid-backed email service
func NewSendGridEmailService(apiKey, fromName, fromAddr string) *SendGridEmailService {
	return &SendGridEmailService{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

func (s *SendGridEmailService) Send(ctx context.Context, to, subject, htmlBody string) error {
	from := mail.NewEmail(s.fromName, s.fromAddr)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}

	return nil
}

// SMTPEmailService sends email through a plain SMTP relay
type SMTPEmailService struct {
	dialer   *gomail.Dialer
	fromName string
	fromAddr string
}

// NewSMTPEmailService creates an SMTP-backed email service
func NewSMTPEmailService(host string, port int, username, password, fromName, fromAddr string) *SMTPEmailService {
	return &SMTPEmailService{
		dialer:   gomail.NewDialer(host, port, username, password),
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

func (s *SMTPEmailService) Send(_ context.Context, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddr, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}

	return nil
}

// MockEmailService logs instead of sending. Development only.
type MockEmailService struct{}

func (MockEmailService) Send(_ context.Context, to, subject, _ string) error {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("Mock email sent")
	return nil
}
