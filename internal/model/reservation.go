package model

import "time"

// Reservation statuses as stored in the `reservations.status` column.
// Only confirmed reservations count toward a slot's capacity; cancelled
// rows are kept for history.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// TableReservation records a customer's table booking for one of the
// fixed evening time slots. A reservation always belongs to exactly one
// (date, time) pair and carries the contact details used by the
// confirmation email.
//
// Fields:
//  ID              – primary key identifier, assigned at creation.
//  Date            – calendar date of the booking ("2006-01-02").
//  Time            – time-of-day slot ("15:04"), one of the fixed set.
//  PartySize       – number of guests, 1 through 8.
//  CustomerName    – name the table is held under.
//  CustomerEmail   – address the confirmation is sent to.
//  CustomerPhone   – contact phone in "(555) 123-4567" form.
//  SpecialRequests – optional free text (allergies, occasions, seating).
//  Status          – confirmed or cancelled.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type TableReservation struct {
	ID              uint64    `json:"id"`               // reservations.id
	Date            string    `json:"date"`             // reservations.res_date
	Time            string    `json:"time"`             // reservations.res_time
	PartySize       int       `json:"partySize"`        // reservations.party_size
	CustomerName    string    `json:"customerName"`     // reservations.customer_name
	CustomerEmail   string    `json:"customerEmail"`    // reservations.customer_email
	CustomerPhone   string    `json:"customerPhone"`    // reservations.customer_phone
	SpecialRequests string    `json:"specialRequests"`  // reservations.special_requests
	Status          string    `json:"status"`           // reservations.status
	CreatedAt       time.Time `json:"createdAt"`        // reservations.created_at
	UpdatedAt       time.Time `json:"updatedAt"`        // reservations.updated_at
}
