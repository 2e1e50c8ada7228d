package model

import (
	"time"

	"shareit/util/apperr"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	// StatusCanceled is part of the taxonomy but no transition produces it yet.
	StatusCanceled BookingStatus = "CANCELED"
)

// Booking is a time-bounded request by Booker to use Item. It starts out
// WAITING and is moved exactly once to APPROVED or REJECTED by the item owner.
type Booking struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status BookingStatus `json:"status"`
	Item   Item          `json:"item"`
	Booker User          `json:"booker"`
}

// BookingState selects which bookings a list query returns.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState maps the query literal to a state. Empty means ALL.
func ParseBookingState(s string) (BookingState, error) {
	switch BookingState(s) {
	case "":
		return StateAll, nil
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return BookingState(s), nil
	default:
		return "", apperr.UnknownState("Unknown state: " + s)
	}
}
