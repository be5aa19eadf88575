package entity

import (
	"time"
)

// Passenger represents a traveler known to the agency
type Passenger struct {
	ID          string    `bson:"_id,omitempty"`
	FullName    string    `bson:"fullName"`
	Email       string    `bson:"email,omitempty"`
	PhoneNumber string    `bson:"phoneNumber,omitempty"`
	Nationality string    `bson:"nationality,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}
