// Package assignmentrepo persists driver assignment offers. A partial unique
// index allows at most one pending assignment per order, backing up the
// in-domain check against concurrent dispatch calls.
package assignmentrepo

import (
	"time"

	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is the database row for an assignment offer.
type AssignmentDTO struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID                uuid.UUID `gorm:"type:uuid;index;index:idx_assignments_one_pending,unique,where:status = 'pending'"`
	DriverID               uuid.UUID `gorm:"type:uuid;index"`
	Status                 string    `gorm:"index"`
	DistanceKm             float64
	EstimatedPickupMinutes int
	DeclineReason          string
	CreatedAt              time.Time `gorm:"index"`
	ResolvedAt             *time.Time
}

// TableName maps the DTO to the "driver_assignments" table.
func (AssignmentDTO) TableName() string {
	return "driver_assignments"
}

func fromDomain(aggregate *driver.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:                     aggregate.ID().Bytes(),
		OrderID:                aggregate.OrderID().Bytes(),
		DriverID:               aggregate.DriverID().Bytes(),
		Status:                 string(aggregate.Status()),
		DistanceKm:             aggregate.DistanceKm(),
		EstimatedPickupMinutes: aggregate.EstimatedPickupMinutes(),
		DeclineReason:          aggregate.DeclineReason(),
		CreatedAt:              aggregate.CreatedAt(),
		ResolvedAt:             aggregate.ResolvedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*driver.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	return driver.RestoreAssignment(
		id, orderID, driverID,
		driver.AssignmentStatus(dto.Status),
		dto.DistanceKm,
		dto.EstimatedPickupMinutes,
		dto.DeclineReason,
		dto.CreatedAt,
		dto.ResolvedAt,
	)
}
