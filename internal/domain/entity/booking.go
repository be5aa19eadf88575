// internal/domain/entity/booking.go
package entity

import (
	"time"
)

// Booking status
const (
	BookingConfirmed = "confirmed"
	BookingUpdated   = "updated"
)

// ExternalSource records where a booking mutation originated
type ExternalSource struct {
	Provider    string `bson:"provider"`
	ReferenceID string `bson:"referenceId,omitempty"`
}

// Booking represents one flight reservation for a passenger
type Booking struct {
	ID               string          `bson:"_id,omitempty"`
	PassengerID      string          `bson:"passengerId"`
	PassengerName    string          `bson:"passengerName"`
	Airline          string          `bson:"airline,omitempty"`
	FlightNumber     string          `bson:"flightNumber"`
	FlightStatus     string          `bson:"flightStatus,omitempty"`
	Origin           string          `bson:"origin,omitempty"`
	Destination      string          `bson:"destination,omitempty"`
	DepartureUTC     time.Time       `bson:"departureUtc"`
	DepartureTime    string          `bson:"departureTime,omitempty"` // HH:MM as extracted
	DepartureLocal   string          `bson:"departureLocal,omitempty"`
	ArrivalTime      string          `bson:"arrivalTime,omitempty"`
	CabinClass       string          `bson:"cabinClass,omitempty"`
	PNR              string          `bson:"pnr,omitempty"`
	EticketNumber    string          `bson:"eticketNumber,omitempty"`
	PaymentInfo      string          `bson:"paymentInfo,omitempty"`
	AgentInfo        string          `bson:"agentInfo,omitempty"`
	Status           string          `bson:"status"`
	ExternalSource   *ExternalSource `bson:"externalSource,omitempty"`
	CreatedAt        time.Time       `bson:"createdAt"`
	UpdatedAt        time.Time       `bson:"updatedAt"`
}
