package repository

import (
	"context"
	"time"

	"travelmail-service/internal/domain/entity"
)

// BookingRepository defines the interface for booking storage operations
type BookingRepository interface {
	FindByPassengerFlightWindow(ctx context.Context, passengerID, flightNumber string, fromTs, toTs time.Time) (*entity.Booking, error)
	Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
}
