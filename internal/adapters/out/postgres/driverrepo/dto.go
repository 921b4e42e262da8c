// Package driverrepo persists driver profiles: availability, verification,
// last known location, and the aggregate delivery counters.
package driverrepo

import (
	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the database row for a driver. Location columns are nullable;
// a driver without a reported location is never dispatchable.
type DriverDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                  string
	Available             bool `gorm:"index"`
	VerificationStatus    string
	LocationLat           *float64
	LocationLng           *float64
	Rating                float64
	TotalDeliveries       int
	DeliveryEarningsCents int64
}

// TableName maps the DTO to the "drivers" table.
func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(aggregate *driver.Driver) DriverDTO {
	var lat, lng *float64
	if loc := aggregate.Location(); loc != nil {
		la, ln := loc.Lat(), loc.Lng()
		lat, lng = &la, &ln
	}

	return DriverDTO{
		ID:                    aggregate.ID().Bytes(),
		Name:                  aggregate.Name(),
		Available:             aggregate.IsAvailable(),
		VerificationStatus:    string(aggregate.VerificationStatus()),
		LocationLat:           lat,
		LocationLng:           lng,
		Rating:                aggregate.Rating(),
		TotalDeliveries:       aggregate.TotalDeliveries(),
		DeliveryEarningsCents: aggregate.DeliveryEarningsCents(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLng != nil {
		point, locErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLng)
		if locErr != nil {
			return nil, locErr
		}
		location = &point
	}

	return driver.RestoreDriver(
		id, dto.Name,
		dto.Available,
		driver.VerificationStatus(dto.VerificationStatus),
		location,
		dto.Rating,
		dto.TotalDeliveries,
		dto.DeliveryEarningsCents,
	)
}
