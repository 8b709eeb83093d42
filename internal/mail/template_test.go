package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDisplayDate(t *testing.T) {
	got, err := FormatDisplayDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "Sunday, June 1, 2025", got)

	_, err = FormatDisplayDate("06/01/2025")
	assert.Error(t, err)
}

func TestRenderConfirmationFullDetails(t *testing.T) {
	ics := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"
	html, err := RenderConfirmation("Jane Doe", "Sunday, June 1, 2025", "19:00", 2,
		"(555) 987-6543", "Window seat please", ics, fixedNow)
	require.NoError(t, err)

	assert.Contains(t, html, "Dear Jane Doe,")
	assert.Contains(t, html, "Sunday, June 1, 2025")
	assert.Contains(t, html, "19:00")
	assert.Contains(t, html, "2 guests")
	assert.Contains(t, html, "(555) 987-6543")
	assert.Contains(t, html, "Window seat please")
	assert.Contains(t, html, "data:text/calendar;charset=utf-8,")
	assert.Contains(t, html, "&copy; 2025 The Savory Table")
}

func TestRenderConfirmationOptionalBlocksOmitted(t *testing.T) {
	html, err := RenderConfirmation("Solo Diner", "Monday, June 2, 2025", "17:00", 1,
		"", "", "BEGIN:VCALENDAR\r\n", fixedNow)
	require.NoError(t, err)

	assert.Contains(t, html, "1 guest")
	assert.NotContains(t, html, "1 guests")
	assert.NotContains(t, html, "Contact:")
	assert.NotContains(t, html, "Special Requests:")
}

func TestConfirmationSubject(t *testing.T) {
	assert.Equal(t,
		"Reservation Confirmation - Sunday, June 1, 2025 at 19:00",
		ConfirmationSubject("Sunday, June 1, 2025", "19:00"))
}
