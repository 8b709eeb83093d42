package notify

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savorytable/restaurant-reservation/internal/mail"
	"github.com/savorytable/restaurant-reservation/internal/secret"
)

// fakeSender records the last message and returns a canned result.
type fakeSender struct {
	lastMsg mail.Message
	lastKey string
	id      string
	err     error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) (string, error) {
	f.lastMsg = msg
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func newTestDispatcher(sender *fakeSender, secrets secret.Store) *Dispatcher {
	return &Dispatcher{
		Secrets: secrets,
		SenderFor: func(apiKey string) mail.Sender {
			sender.lastKey = apiKey
			return sender
		},
		Loc: time.UTC,
		Now: func() time.Time { return time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC) },
	}
}

func validRequest() Request {
	return Request{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@x.com",
		Date:          "2025-06-01",
		Time:          "19:00",
		PartySize:     2,
	}
}

func TestDispatchEmptyRequestListsAllMissingFields(t *testing.T) {
	d := newTestDispatcher(&fakeSender{}, secret.Static{secret.ResendAPIKey: "re_test"})

	res := d.Dispatch(context.Background(), Request{})
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Missing required fields: customerName, customerEmail, date, time, partySize", res.Err)
}

func TestDispatchRejectsMalformedEmail(t *testing.T) {
	d := newTestDispatcher(&fakeSender{}, secret.Static{secret.ResendAPIKey: "re_test"})

	req := validRequest()
	req.CustomerEmail = "not-an-email"
	res := d.Dispatch(context.Background(), req)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
	assert.Equal(t, "Invalid email address format", res.Err)
}

func TestDispatchEmailShapes(t *testing.T) {
	d := newTestDispatcher(&fakeSender{id: "email_1"}, secret.Static{secret.ResendAPIKey: "re_test"})

	req := validRequest()
	req.CustomerEmail = "a@b.com"
	assert.True(t, d.Dispatch(context.Background(), req).Success)

	for _, bad := range []string{"a b@c.com", "a@b", "@b.com", "a@"} {
		req.CustomerEmail = bad
		res := d.Dispatch(context.Background(), req)
		assert.Equal(t, http.StatusUnprocessableEntity, res.Status, "email %q", bad)
	}
}

func TestDispatchMissingCredentialIsConfigurationError(t *testing.T) {
	sender := &fakeSender{id: "email_1"}
	d := newTestDispatcher(sender, secret.Static{})

	res := d.Dispatch(context.Background(), validRequest())
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Contains(t, res.Err, "not configured")
	assert.Empty(t, sender.lastMsg.To, "no send may be attempted without a credential")
}

func TestDispatchProviderFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("quota exceeded")}
	d := newTestDispatcher(sender, secret.Static{secret.ResendAPIKey: "re_test"})

	res := d.Dispatch(context.Background(), validRequest())
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Contains(t, res.Err, "contact the restaurant directly")
}

func TestDispatchSuccess(t *testing.T) {
	sender := &fakeSender{id: "email_abc123"}
	d := newTestDispatcher(sender, secret.Static{secret.ResendAPIKey: "re_test"})

	req := validRequest()
	req.CustomerPhone = "(555) 987-6543"
	req.SpecialRequests = "Anniversary dinner"
	res := d.Dispatch(context.Background(), req)

	require.True(t, res.Success, "unexpected error: %s", res.Err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Confirmation email sent successfully", res.Message)
	assert.Equal(t, "email_abc123", res.EmailID)
	assert.Equal(t, "re_test", sender.lastKey)

	msg := sender.lastMsg
	assert.Equal(t, mail.FromAddress, msg.From)
	assert.Equal(t, "jane@x.com", msg.To)
	assert.Equal(t, "Reservation Confirmation - Sunday, June 1, 2025 at 19:00", msg.Subject)
	assert.Contains(t, msg.HTML, "Jane Doe")
	assert.Contains(t, msg.HTML, "Anniversary dinner")

	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "reservation.ics", msg.Attachments[0].Filename)
	ics := string(msg.Attachments[0].Content)
	// Dispatcher zone is UTC here, so 19:00 local == 19:00 UTC.
	assert.Contains(t, ics, "DTSTART:20250601T190000Z")
	assert.Contains(t, ics, "DTEND:20250601T210000Z")
	assert.Contains(t, ics, "STATUS:CONFIRMED")
}

func TestDispatchInvalidDateFailsBeforeSend(t *testing.T) {
	sender := &fakeSender{id: "email_1"}
	d := newTestDispatcher(sender, secret.Static{secret.ResendAPIKey: "re_test"})

	req := validRequest()
	req.Date = "June 1st"
	res := d.Dispatch(context.Background(), req)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Empty(t, sender.lastMsg.To)
}
