package driverrepo

import (
	"context"
	"errors"

	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Add saves a new driver to the database.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing driver to the database.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DriverDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", dto.ID.String())
	}

	return nil
}

// Get retrieves a driver by ID.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllDispatchable retrieves the fleet snapshot eligible for dispatch.
func (r *GormDriverRepository) GetAllDispatchable(ctx context.Context) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where("verification_status = ?", string(driver.VerificationApproved)).
		Where("location_lat IS NOT NULL AND location_lng IS NOT NULL").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}
