// Package mail renders and sends the booking-confirmation email: the
// HTML body, the iCalendar attachment and the provider call.
package mail

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// Venue identity baked into outgoing mail and calendar events.
const (
	VenueName    = "The Savory Table"
	VenueAddress = "123 Gourmet Street, Culinary District"
	VenuePhone   = "(555) 123-4567"
	VenueEmail   = "info@savorytable.com"
	VenueDomain  = "savorytable.com"

	// FromAddress is the fixed sender identity for all confirmations.
	FromAddress = "The Savory Table <noreply@savorytable.com>"
)

// Attachment is one file attached to an outgoing message. Content holds
// the raw bytes; the provider implementation handles base64 encoding on
// the wire.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a fully rendered outbound email.
type Message struct {
	From        string
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers a message through an external mail provider and
// returns the provider's message identifier.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendSender sends mail through the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender builds a sender authenticated with the given API key.
func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

// Send delivers the message and returns Resend's email id.
func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	for _, a := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}
	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}
