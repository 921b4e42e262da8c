package assignmentrepo

import (
	"context"
	"errors"
	"time"

	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add saves a new assignment. A second pending assignment for the same order
// violates the partial unique index and surfaces as a ConflictError.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *driver.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("assignment",
				"order already has a pending assignment", err)
		}
		return err
	}

	return nil
}

// Update saves an existing assignment to the database.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *driver.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", dto.ID.String())
	}

	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingByOrder retrieves the order's pending assignment, or nil when
// none exists.
func (r *GormAssignmentRepository) GetPendingByOrder(
	ctx context.Context, orderID kernel.UUID,
) (*driver.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND status = ?", orderID.Bytes(), string(driver.AssignmentPending)).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetStalePending retrieves pending assignments created before the cutoff,
// oldest first.
func (r *GormAssignmentRepository) GetStalePending(
	ctx context.Context, cutoff time.Time,
) ([]*driver.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(driver.AssignmentPending), cutoff).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]*driver.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}
