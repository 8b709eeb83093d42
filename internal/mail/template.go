package mail

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

// confirmationData is everything the confirmation template needs,
// precomputed so the template itself stays logic-free.
type confirmationData struct {
	CustomerName    string
	FormattedDate   string
	Time            string
	PartySize       int
	GuestLabel      string
	CustomerPhone   string
	SpecialRequests string
	CalendarHref    template.URL
	VenueName       string
	VenueAddress    string
	VenuePhone      string
	VenueEmail      string
	Year            int
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Reservation Confirmation</title>
    <style>
      body { font-family: 'Inter', -apple-system, 'Segoe UI', sans-serif; line-height: 1.6; color: #374151; margin: 0; padding: 0; background-color: #f9fafb; }
      .container { max-width: 600px; margin: 0 auto; background: white; border-radius: 8px; overflow: hidden; }
      .header { background: linear-gradient(135deg, #D97706 0%, #F59E0B 100%); color: white; padding: 40px 20px; text-align: center; }
      .header h1 { margin: 0; font-size: 28px; font-family: 'Playfair Display', serif; }
      .content { padding: 40px 30px; }
      .detail-box { background: #FFFBEB; border-left: 4px solid #D97706; padding: 20px; margin: 20px 0; border-radius: 4px; }
      .detail-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #FDE68A; }
      .detail-row:last-child { border-bottom: none; }
      .detail-label { font-weight: 600; color: #78350F; }
      .calendar-btn { display: inline-block; background: #D97706; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 20px 0; font-weight: 500; }
      .footer { background: #F9FAFB; padding: 30px; text-align: center; color: #6B7280; font-size: 14px; }
      .special-requests { background: #FEF3C7; padding: 15px; border-radius: 4px; margin: 15px 0; font-style: italic; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>&#127869;&#65039; Reservation Confirmed!</h1>
        <p style="margin: 10px 0 0 0; opacity: 0.9;">{{.VenueName}}</p>
      </div>
      <div class="content">
        <p>Dear {{.CustomerName}},</p>
        <p>Thank you for choosing {{.VenueName}}! We're delighted to confirm your reservation.</p>
        <div class="detail-box">
          <div class="detail-row">
            <span class="detail-label">&#128197; Date:</span>
            <span>{{.FormattedDate}}</span>
          </div>
          <div class="detail-row">
            <span class="detail-label">&#128336; Time:</span>
            <span>{{.Time}}</span>
          </div>
          <div class="detail-row">
            <span class="detail-label">&#128101; Party Size:</span>
            <span>{{.PartySize}} {{.GuestLabel}}</span>
          </div>
          {{if .CustomerPhone}}
          <div class="detail-row">
            <span class="detail-label">&#128222; Contact:</span>
            <span>{{.CustomerPhone}}</span>
          </div>
          {{end}}
        </div>
        {{if .SpecialRequests}}
        <div class="special-requests">
          <strong>Special Requests:</strong><br>
          {{.SpecialRequests}}
        </div>
        {{end}}
        <p style="text-align: center;">
          <a href="{{.CalendarHref}}" download="reservation.ics" class="calendar-btn">&#128197; Add to Calendar</a>
        </p>
        <p>We look forward to serving you! If you need to make any changes to your reservation, please contact us at least 24 hours in advance.</p>
        <p><strong>Contact Information:</strong><br>
        &#128205; {{.VenueAddress}}<br>
        &#128222; {{.VenuePhone}}<br>
        &#128231; {{.VenueEmail}}</p>
      </div>
      <div class="footer">
        <p>Thank you for choosing {{.VenueName}}</p>
        <p>&copy; {{.Year}} {{.VenueName}}. All rights reserved.</p>
      </div>
    </div>
  </body>
</html>
`))

// FormatDisplayDate renders a raw "2006-01-02" date in the long form
// used in mail copy and subjects, e.g. "Sunday, June 1, 2025".
func FormatDisplayDate(date string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("parse reservation date: %w", err)
	}
	return d.Format("Monday, January 2, 2006"), nil
}

// RenderConfirmation produces the HTML body of the confirmation email.
// The same ICS content that is attached to the message is also embedded
// inline as a data: link so the customer can download it from the body.
func RenderConfirmation(customerName, formattedDate, slot string, partySize int,
	customerPhone, specialRequests, ics string, now time.Time) (string, error) {

	href := "data:text/calendar;charset=utf-8," + url.PathEscape(ics)
	data := confirmationData{
		CustomerName:    customerName,
		FormattedDate:   formattedDate,
		Time:            slot,
		PartySize:       partySize,
		GuestLabel:      GuestLabel(partySize),
		CustomerPhone:   customerPhone,
		SpecialRequests: specialRequests,
		CalendarHref:    template.URL(href),
		VenueName:       VenueName,
		VenueAddress:    VenueAddress,
		VenuePhone:      VenuePhone,
		VenueEmail:      VenueEmail,
		Year:            now.Year(),
	}
	var b strings.Builder
	if err := confirmationTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ConfirmationSubject builds the subject line from the display date and
// slot time.
func ConfirmationSubject(formattedDate, slot string) string {
	return fmt.Sprintf("Reservation Confirmation - %s at %s", formattedDate, slot)
}
