package repository

import (
	"context"

	"travelmail-service/internal/domain/entity"
)

// PassengerRepository defines the interface for passenger lookups
type PassengerRepository interface {
	FindByNameSubstring(ctx context.Context, text string) (*entity.Passenger, error)
}
