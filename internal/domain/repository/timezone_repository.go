package repository

import (
	"context"

	"travelmail-service/internal/domain/entity"
)

// TimezoneRepository defines the interface for airport timezone lookups
type TimezoneRepository interface {
	GetByAirportCode(ctx context.Context, code string) (*entity.Timezone, error)
}
