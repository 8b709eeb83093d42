package mail

import (
	"fmt"
	"strings"
	"time"

	"github.com/savorytable/restaurant-reservation/internal/utils"
)

// ReservationDuration is the fixed length of a table booking used for
// the calendar event; the restaurant does not track per-party seating
// length.
const ReservationDuration = 2 * time.Hour

// CalendarEvent is the derived, never-persisted event embedded in the
// confirmation email as an .ics attachment. Start and End are absolute
// instants; serialization converts them to UTC.
type CalendarEvent struct {
	UID         string
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	Location    string
}

// NewReservationEvent builds the calendar event for one reservation.
// The date ("2006-01-02") and slot ("15:04") are interpreted in loc,
// which is the server's local zone in production. The UID combines the
// current timestamp with a random suffix: collision-resistant, not
// globally unique.
func NewReservationEvent(date, slot string, partySize int, customerName string, loc *time.Location, now time.Time) (CalendarEvent, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+slot, loc)
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("parse reservation start: %w", err)
	}
	suffix, err := utils.RandomHex(5)
	if err != nil {
		return CalendarEvent{}, err
	}
	return CalendarEvent{
		UID:   fmt.Sprintf("%s-%s@%s", icsTime(now), suffix, VenueDomain),
		Start: start,
		End:   start.Add(ReservationDuration),
		Summary: fmt.Sprintf("Dinner at %s", VenueName),
		Description: fmt.Sprintf(
			"Reservation for %d %s at %s\n\nReservation Name: %s\n\nPlease arrive 10 minutes early.",
			partySize, GuestLabel(partySize), VenueName, customerName),
		Location: VenueName + ", " + VenueAddress,
	}, nil
}

// RenderICS serializes the event as a VCALENDAR block: version 2.0, one
// VEVENT with STATUS:CONFIRMED and a display alarm 24 hours before
// start. Lines are CRLF-terminated and text values escaped per RFC 5545.
func RenderICS(ev CalendarEvent, now time.Time) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}
	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//" + VenueName + "//Reservation System//EN")
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")
	line("BEGIN:VEVENT")
	line("UID:" + ev.UID)
	line("DTSTAMP:" + icsTime(now))
	line("DTSTART:" + icsTime(ev.Start))
	line("DTEND:" + icsTime(ev.End))
	line("SUMMARY:" + escapeICSText(ev.Summary))
	line("DESCRIPTION:" + escapeICSText(ev.Description))
	line("LOCATION:" + escapeICSText(ev.Location))
	line("STATUS:CONFIRMED")
	line("SEQUENCE:0")
	line("BEGIN:VALARM")
	line("TRIGGER:-PT24H")
	line("ACTION:DISPLAY")
	line("DESCRIPTION:" + escapeICSText("Reminder: Dinner reservation at "+VenueName+" tomorrow"))
	line("END:VALARM")
	line("END:VEVENT")
	line("END:VCALENDAR")
	return b.String()
}

// icsTime formats an instant as an iCalendar UTC timestamp
// (YYYYMMDDTHHMMSSZ).
func icsTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICSText escapes backslashes, separators and newlines in TEXT
// property values as required by RFC 5545 §3.3.11.
func escapeICSText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

// GuestLabel pluralizes the party-size noun used in mail copy.
func GuestLabel(partySize int) string {
	if partySize == 1 {
		return "guest"
	}
	return "guests"
}
