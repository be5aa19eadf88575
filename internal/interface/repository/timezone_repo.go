package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/internal/domain/repository"
)

// GormTimezoneRepository implements the TimezoneRepository interface
type GormTimezoneRepository struct {
	db *gorm.DB
}

// NewGormTimezoneRepository creates a new GORM timezone repository
func NewGormTimezoneRepository(db *gorm.DB) repository.TimezoneRepository {
	return &GormTimezoneRepository{
		db: db,
	}
}

// Timezonelist GORM model for database mapping
type Timezonelist struct {
	ID          uint           `gorm:"primaryKey"`
	AirportCode string         `gorm:"column:airportcode;unique"`
	AirportName string         `gorm:"column:airport_name"`
	CityName    string         `gorm:"column:cityname"`
	TzName      string         `gorm:"column:tzname"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (Timezonelist) TableName() string {
	return "m_timezone_list"
}

// GetByAirportCode finds a timezone by IATA airport code. Returns nil
// without error for unknown airports.
func (r *GormTimezoneRepository) GetByAirportCode(ctx context.Context, code string) (*entity.Timezone, error) {
	var timezone Timezonelist
	result := r.db.WithContext(ctx).Unscoped().Where("airportcode = ?", code).First(&timezone)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	return &entity.Timezone{
		ID:          timezone.ID,
		AirportCode: timezone.AirportCode,
		AirportName: timezone.AirportName,
		CityName:    timezone.CityName,
		TzName:      timezone.TzName,
		CreatedAt:   timezone.CreatedAt,
		UpdatedAt:   timezone.UpdatedAt,
		DeletedAt:   timezone.DeletedAt,
	}, nil
}
