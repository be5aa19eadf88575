package repository

import (
	"context"

	"travelmail-service/internal/domain/entity"
)

// NotificationRepository defines the interface for downstream signals.
// Each signal is idempotent through its dedupe key: repeated signals for
// the same event collapse to a single notification.
type NotificationRepository interface {
	NotifyBookingCreated(ctx context.Context, bookingID string) error
	NotifyFlightTimeUpdated(ctx context.Context, bookingID string) error
	NotifyUnrecognizedBooking(ctx context.Context, details *entity.UnrecognizedBooking) error
}
