package queries

import (
	"context"

	"mealmarket/internal/adapters/out/postgres/orderrepo"
	"mealmarket/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists order summaries from the database. Results
// come back newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query with all requested filters applied.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context, query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Model(&orderrepo.OrderDTO{})
	if status := query.Status(); status != nil {
		db = db.Where("status = ?", string(*status))
	}
	if customerID := query.CustomerID(); customerID != nil {
		db = db.Where("customer_id = ?", customerID.Bytes())
	}
	if chefID := query.ChefID(); chefID != nil {
		db = db.Where("chef_id = ?", chefID.Bytes())
	}
	if driverID := query.DriverID(); driverID != nil {
		db = db.Where("driver_id = ?", driverID.Bytes())
	}

	var dtos []orderrepo.OrderDTO
	err := db.
		Select("id", "order_number", "status", "total_cents", "created_at").
		Order("created_at DESC").
		Limit(query.Limit()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]ListOrdersQueryResponse, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		orders = append(orders, ListOrdersQueryResponse{
			ID:          id,
			OrderNumber: dto.OrderNumber,
			Status:      dto.Status,
			TotalCents:  dto.TotalCents,
			CreatedAt:   dto.CreatedAt,
		})
	}

	return orders, nil
}
