// Package email sends pipeline responses to inquirers via SendGrid.
package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrDisabled is returned when email delivery is switched off by
// configuration. A disabled notifier is a silent no-op, not a failure.
var ErrDisabled = errors.New("email delivery disabled")

// ErrSend marks an actual delivery failure (auth, transport, provider
// rejection). Logged and swallowed at the pipeline boundary.
var ErrSend = errors.New("email delivery failed")

// Service handles sending emails via SendGrid
type Service struct {
	apiKey    string
	fromEmail string
	fromName  string
	enabled   bool
}

// NewService creates a new email service instance
func NewService(apiKey, fromEmail, fromName string, enabled bool) *Service {
	if fromName == "" {
		fromName = "Real Estate Assistant"
	}
	return &Service{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   enabled,
	}
}

// Enabled reports whether delivery is switched on.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Send delivers one message. Returns ErrDisabled (no delivery attempt)
// when the service is switched off, ErrSend-wrapped errors on failure.
func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if s.apiKey == "" {
		return fmt.Errorf("%w: SendGrid API key not configured", ErrSend)
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	msg := mail.NewSingleEmail(from, subject, recipient, body, body)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d, body: %s", ErrSend, response.StatusCode, response.Body)
	}

	return nil
}
