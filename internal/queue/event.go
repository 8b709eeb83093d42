package queue

// ReservationConfirmedEvent is published when a table reservation is
// successfully created. It contains enough information for downstream
// consumers to log, notify, or feed analytics without querying the
// primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"party_size"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	ConfirmedAt   string `json:"confirmed_at"`
}
