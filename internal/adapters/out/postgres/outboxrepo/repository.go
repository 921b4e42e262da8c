package outboxrepo

import (
	"context"
	"fmt"

	"mealmarket/internal/core/domain/model/outbox"
	"mealmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// Retry backoff grows linearly with the attempt count, capped so a poisoned
// message retries at least every backoffCapSeconds.
const (
	backoffStepSeconds = 5
	backoffCapSeconds  = 300
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add inserts new outbox messages.
func (r *GormOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, message := range messages {
		if err := message.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(message))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Update persists the relay outcome of a message.
func (r *GormOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	result := r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "attempts", "last_error", "published_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", dto.ID.String())
	}

	return nil
}

// GetPending retrieves up to limit pending messages due for a relay attempt,
// oldest first. A message that has failed n times is not due again until
// min(n*5, 300) seconds after its last attempt.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var dtos []MessageDTO
	backoff := fmt.Sprintf(
		"attempts = 0 OR updated_at < NOW() - make_interval(secs => LEAST(attempts * %d, %d))",
		backoffStepSeconds, backoffCapSeconds)
	err := r.db.WithContext(ctx).
		Where("status = ?", string(outbox.StatusPending)).
		Where(backoff).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, nil
}
