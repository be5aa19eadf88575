package repository

import (
	"context"

	"travelmail-service/internal/domain/entity"
)

// MailerRepository defines the interface for outbound confirmation email
// hand-off. Rendering and delivery are owned by the mailer service.
type MailerRepository interface {
	SendBookingConfirmation(ctx context.Context, booking *entity.Booking, passenger *entity.Passenger) error
}
