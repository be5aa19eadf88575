package entity

import (
	"time"
)

// NotificationType identifies the downstream event being signalled
type NotificationType string

const (
	BookingCreatedNotice      NotificationType = "booking_created"
	FlightTimeUpdatedNotice   NotificationType = "flight_time_updated"
	UnrecognizedBookingNotice NotificationType = "unrecognized_booking"
)

// UnrecognizedBooking carries the details of a ticket whose traveler
// matched no stored passenger
type UnrecognizedBooking struct {
	TravelerName string `bson:"travelerName" json:"travelerName"`
	FlightNumber string `bson:"flightNumber" json:"flightNumber"`
	Origin       string `bson:"origin" json:"origin"`
	Destination  string `bson:"destination" json:"destination"`
}

// Notification is a downstream signal persisted for the notification
// subsystem to deliver. DedupeKey makes repeated signals for the same
// event collapse to one document.
type Notification struct {
	ID           string               `bson:"_id,omitempty"`
	Type         NotificationType     `bson:"type"`
	BookingID    string               `bson:"bookingId,omitempty"`
	Unrecognized *UnrecognizedBooking `bson:"unrecognized,omitempty"`
	DedupeKey    string               `bson:"dedupeKey"`
	CreatedAt    time.Time            `bson:"createdAt"`
}
