package mail

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func TestNewReservationEventTimes(t *testing.T) {
	// Zone with a fixed -4h offset: 19:00 local serializes as 23:00 UTC.
	loc := time.FixedZone("EDT", -4*60*60)

	ev, err := NewReservationEvent("2025-06-01", "19:00", 2, "Jane Doe", loc, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "20250601T230000Z", icsTime(ev.Start))
	assert.Equal(t, "20250602T010000Z", icsTime(ev.End))
	assert.Equal(t, ReservationDuration, ev.End.Sub(ev.Start))
	assert.Contains(t, ev.Description, "2 guests")
	assert.Contains(t, ev.Description, "Jane Doe")
}

func TestNewReservationEventSingleGuest(t *testing.T) {
	ev, err := NewReservationEvent("2025-06-01", "17:30", 1, "Solo Diner", time.UTC, fixedNow)
	require.NoError(t, err)
	assert.Contains(t, ev.Description, "1 guest at")
	assert.NotContains(t, ev.Description, "1 guests")
}

func TestNewReservationEventUIDShape(t *testing.T) {
	ev, err := NewReservationEvent("2025-06-01", "19:00", 2, "Jane Doe", time.UTC, fixedNow)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^20250520T120000Z-[0-9a-f]{10}@savorytable\.com$`), ev.UID)

	// Two events generated at the same instant must not collide.
	ev2, err := NewReservationEvent("2025-06-01", "19:00", 2, "Jane Doe", time.UTC, fixedNow)
	require.NoError(t, err)
	assert.NotEqual(t, ev.UID, ev2.UID)
}

func TestNewReservationEventRejectsBadInput(t *testing.T) {
	_, err := NewReservationEvent("June 1st", "19:00", 2, "Jane", time.UTC, fixedNow)
	assert.Error(t, err)
	_, err = NewReservationEvent("2025-06-01", "7pm", 2, "Jane", time.UTC, fixedNow)
	assert.Error(t, err)
}

func TestRenderICSStructure(t *testing.T) {
	ev, err := NewReservationEvent("2025-06-01", "19:00", 4, "Jane Doe", time.UTC, fixedNow)
	require.NoError(t, err)
	ics := RenderICS(ev, fixedNow)

	lines := strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n")
	assert.Equal(t, "BEGIN:VCALENDAR", lines[0])
	assert.Equal(t, "END:VCALENDAR", lines[len(lines)-1])

	for _, want := range []string{
		"VERSION:2.0",
		"PRODID:-//The Savory Table//Reservation System//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"DTSTAMP:20250520T120000Z",
		"DTSTART:20250601T190000Z",
		"DTEND:20250601T210000Z",
		"STATUS:CONFIRMED",
		"SEQUENCE:0",
		"BEGIN:VALARM",
		"TRIGGER:-PT24H",
		"ACTION:DISPLAY",
		"END:VALARM",
		"END:VEVENT",
	} {
		assert.Contains(t, lines, want)
	}

	// The address comma must be escaped in LOCATION.
	assert.Contains(t, ics, `LOCATION:The Savory Table\, 123 Gourmet Street\, Culinary District`)
	// Newlines in DESCRIPTION become literal \n sequences.
	assert.Contains(t, ics, `DESCRIPTION:Reservation for 4 guests at The Savory Table\n\n`)
	assert.NotContains(t, strings.TrimSuffix(ics, "\r\n"), "\n\n", "no raw blank lines inside the block")
}

func TestEscapeICSText(t *testing.T) {
	assert.Equal(t, `a\, b\; c\\d\ne`, escapeICSText("a, b; c\\d\ne"))
	assert.Equal(t, `crlf\nhere`, escapeICSText("crlf\r\nhere"))
}

func TestGuestLabel(t *testing.T) {
	assert.Equal(t, "guest", GuestLabel(1))
	assert.Equal(t, "guests", GuestLabel(2))
	assert.Equal(t, "guests", GuestLabel(8))
}
