// Package notify implements the booking-confirmation pipeline: it
// validates a notification request, renders the HTML email and the
// iCalendar attachment, and sends them through the mail provider. Every
// outcome is reported as a structured result with an HTTP-style status
// code; nothing escapes the dispatcher uncaught.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/savorytable/restaurant-reservation/internal/mail"
	"github.com/savorytable/restaurant-reservation/internal/secret"
)

// emailShape matches the local@domain.tld form accepted for customer
// addresses. Deliverability is the provider's problem; this only rejects
// obviously broken input.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Request carries the reservation fields needed to render and send one
// confirmation email. It mirrors the JSON body of the notification
// endpoint; the dispatcher never mutates the reservation itself.
type Request struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone,omitempty"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PartySize       int    `json:"partySize"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// Result is the structured outcome of one dispatch. Exactly one of
// Message or Err is set depending on Success.
type Result struct {
	Status  int    // HTTP-style status code
	Success bool
	Message string // set on success
	Err     string // set on failure
	EmailID string // provider message id, set on success
}

func failure(status int, msg string) Result {
	return Result{Status: status, Success: false, Err: msg}
}

// Dispatcher sends confirmation emails. SenderFor exists so tests can
// substitute a fake provider; when nil, a Resend client is built from
// the credential.
type Dispatcher struct {
	Secrets   secret.Store
	SenderFor func(apiKey string) mail.Sender
	Loc       *time.Location   // zone reservation times are interpreted in
	Now       func() time.Time // clock, UTC in production
}

// NewDispatcher wires a dispatcher with production defaults: Resend as
// the provider, the server's local zone and the real clock.
func NewDispatcher(secrets secret.Store) *Dispatcher {
	return &Dispatcher{
		Secrets:   secrets,
		SenderFor: func(apiKey string) mail.Sender { return mail.NewResendSender(apiKey) },
		Loc:       time.Local,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Dispatch validates the request, renders the email and attachment and
// sends them. Validation failures are reported before any external call
// is attempted. A recovered panic is mapped to a generic 500 carrying
// the panic message.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failure(http.StatusInternalServerError,
				fmt.Sprintf("An unexpected error occurred while sending the confirmation email: %v", r))
		}
	}()

	if missing := req.missingFields(); len(missing) > 0 {
		return failure(http.StatusBadRequest,
			"Missing required fields: "+strings.Join(missing, ", "))
	}
	if !emailShape.MatchString(req.CustomerEmail) {
		return failure(http.StatusUnprocessableEntity, "Invalid email address format")
	}

	apiKey, err := d.Secrets.Get(ctx, secret.ResendAPIKey)
	if err != nil || apiKey == "" {
		return failure(http.StatusInternalServerError,
			"Email service not configured. Please contact support.")
	}

	formattedDate, err := mail.FormatDisplayDate(req.Date)
	if err != nil {
		return failure(http.StatusBadRequest, "Invalid reservation date")
	}

	now := d.Now()
	event, err := mail.NewReservationEvent(req.Date, req.Time, req.PartySize, req.CustomerName, d.Loc, now)
	if err != nil {
		return failure(http.StatusBadRequest, "Invalid reservation time")
	}
	ics := mail.RenderICS(event, now)

	html, err := mail.RenderConfirmation(req.CustomerName, formattedDate, req.Time,
		req.PartySize, req.CustomerPhone, req.SpecialRequests, ics, now)
	if err != nil {
		return failure(http.StatusInternalServerError,
			"An unexpected error occurred while sending the confirmation email")
	}

	emailID, err := d.SenderFor(apiKey).Send(ctx, mail.Message{
		From:    mail.FromAddress,
		To:      req.CustomerEmail,
		Subject: mail.ConfirmationSubject(formattedDate, req.Time),
		HTML:    html,
		Attachments: []mail.Attachment{
			{Filename: "reservation.ics", Content: []byte(ics)},
		},
	})
	if err != nil {
		return failure(http.StatusInternalServerError,
			"Failed to send confirmation email. Please contact the restaurant directly.")
	}

	return Result{
		Status:  http.StatusOK,
		Success: true,
		Message: "Confirmation email sent successfully",
		EmailID: emailID,
	}
}

// missingFields returns the names of absent required fields, in the
// order the API documents them.
func (r Request) missingFields() []string {
	missing := []string{}
	if strings.TrimSpace(r.CustomerName) == "" {
		missing = append(missing, "customerName")
	}
	if strings.TrimSpace(r.CustomerEmail) == "" {
		missing = append(missing, "customerEmail")
	}
	if strings.TrimSpace(r.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(r.Time) == "" {
		missing = append(missing, "time")
	}
	if r.PartySize == 0 {
		missing = append(missing, "partySize")
	}
	return missing
}
