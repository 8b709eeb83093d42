package model

import "time"

// Review is a customer-submitted rating with an optional comment.
// Verified starts false and is flipped by staff once the visit is
// matched to a reservation.
type Review struct {
	ID           uint64    `json:"id"`           // reviews.id
	CustomerName string    `json:"customerName"` // reviews.customer_name
	Rating       int       `json:"rating"`       // reviews.rating (1..5)
	Comment      string    `json:"comment"`      // reviews.comment
	Date         string    `json:"date"`         // reviews.review_date ("2006-01-02")
	Verified     bool      `json:"verified"`     // reviews.verified
	CreatedAt    time.Time `json:"createdAt"`    // reviews.created_at
}

// ReviewSummary aggregates all reviews for the site header: the mean
// rating rounded to one decimal and a count per star value.
type ReviewSummary struct {
	Average      float64     `json:"average"`
	Count        int         `json:"count"`
	Distribution map[int]int `json:"distribution"` // star value -> count
}
