// Package availability implements the slot model for table bookings:
// the fixed set of evening time slots and the per-slot capacity check
// against existing confirmed reservations.
package availability

import (
	"context"
	"log"
)

// SlotCapacity is the maximum number of confirmed reservations allowed
// per (date, time) pair. There is no table inventory model; the cap is
// a fixed number agreed with the restaurant.
const SlotCapacity = 3

// timeSlots is the fixed candidate set: 17:00 through 22:00 at
// 30-minute granularity, ascending. Slots do not depend on the date.
var timeSlots = []string{
	"17:00", "17:30", "18:00", "18:30", "19:00", "19:30",
	"20:00", "20:30", "21:00", "21:30", "22:00",
}

// TimeSlots returns the fixed candidate slot set in ascending order.
// The returned slice is a copy; callers may modify it freely.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// IsSlot reports whether t is one of the fixed candidate slots.
func IsSlot(t string) bool {
	for _, s := range timeSlots {
		if s == t {
			return true
		}
	}
	return false
}

// ConfirmedCounter is the single read the checker needs from the
// reservation store: how many confirmed reservations exist for a
// (date, time) pair.
type ConfirmedCounter interface {
	CountConfirmed(ctx context.Context, date, slot string) (int, error)
}

// Checker answers slot availability questions against a reservation
// store. It holds no state of its own; every call hits the store.
type Checker struct {
	Store ConfirmedCounter
}

// NewChecker returns a Checker bound to the given store.
func NewChecker(store ConfirmedCounter) *Checker { return &Checker{Store: store} }

// IsAvailable reports whether a reservation can still be taken for the
// given date and slot, i.e. fewer than SlotCapacity confirmed
// reservations exist for the pair. When the store read fails the
// checker fails open and reports the slot as available, so a transient
// read error never blocks bookings; the error is logged because the
// fail-open path can overbook.
func (ch *Checker) IsAvailable(ctx context.Context, date, slot string) bool {
	n, err := ch.Store.CountConfirmed(ctx, date, slot)
	if err != nil {
		log.Printf("availability: count failed for %s %s, failing open: %v", date, slot, err)
		return true
	}
	return n < SlotCapacity
}

// AvailableSlots returns the subset of the fixed slots still bookable
// on the given date, in the generator's ascending order. The result is
// recomputed fresh on every call; nothing is cached.
func (ch *Checker) AvailableSlots(ctx context.Context, date string) []string {
	open := make([]string, 0, len(timeSlots))
	for _, slot := range timeSlots {
		if ch.IsAvailable(ctx, date, slot) {
			open = append(open, slot)
		}
	}
	return open
}
