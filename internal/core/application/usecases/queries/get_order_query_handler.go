package queries

import (
	"context"
	"errors"

	"mealmarket/internal/adapters/out/postgres/orderrepo"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order's full detail from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. History rows come back in Seq order, so the
// response's audit trail reads top to bottom.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context, query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var dto orderrepo.OrderDTO
	err := h.db.WithContext(ctx).
		First(&dto, "id = ?", query.OrderID().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError(
				"order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	var itemDTOs []orderrepo.ItemDTO
	if err = h.db.WithContext(ctx).
		Find(&itemDTOs, "order_id = ?", dto.ID).Error; err != nil {
		return GetOrderQueryResponse{}, err
	}

	var historyDTOs []orderrepo.HistoryDTO
	if err = h.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("seq").
		Find(&historyDTOs).Error; err != nil {
		return GetOrderQueryResponse{}, err
	}

	return buildOrderResponse(dto, itemDTOs, historyDTOs)
}

func buildOrderResponse(
	dto orderrepo.OrderDTO,
	itemDTOs []orderrepo.ItemDTO,
	historyDTOs []orderrepo.HistoryDTO,
) (GetOrderQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	chefID, err := kernel.UUIDFromBytes(dto.ChefID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return GetOrderQueryResponse{}, driverErr
		}
		driverID = &dID
	}

	items := make([]ItemResponse, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return GetOrderQueryResponse{}, itemErr
		}
		items = append(items, ItemResponse{
			MenuItemID:     menuItemID,
			Name:           itemDTO.Name,
			UnitPriceCents: itemDTO.UnitPriceCents,
			Quantity:       itemDTO.Quantity,
		})
	}

	history := make([]HistoryResponse, 0, len(historyDTOs))
	for _, historyDTO := range historyDTOs {
		history = append(history, HistoryResponse{
			Seq:        historyDTO.Seq,
			FromStatus: historyDTO.FromStatus,
			ToStatus:   historyDTO.ToStatus,
			ActorRole:  historyDTO.ActorRole,
			Note:       historyDTO.Note,
			At:         historyDTO.At,
		})
	}

	return GetOrderQueryResponse{
		ID:            id,
		OrderNumber:   dto.OrderNumber,
		CustomerID:    customerID,
		ChefID:        chefID,
		DriverID:      driverID,
		Status:        dto.Status,
		RefundedCents: dto.RefundedCents,
		Breakdown: BreakdownResponse{
			SubtotalCents:     dto.SubtotalCents,
			PlatformFeeCents:  dto.PlatformFeeCents,
			ChefEarningsCents: dto.ChefEarningsCents,
			TaxCents:          dto.TaxCents,
			DeliveryFeeCents:  dto.DeliveryFeeCents,
			TotalCents:        dto.TotalCents,
		},
		Items:           items,
		History:         history,
		DeliveryAddress: dto.DeliveryAddress,
		CreatedAt:       dto.CreatedAt,
		AssignedAt:      dto.AssignedAt,
		PickedUpAt:      dto.PickedUpAt,
		DeliveredAt:     dto.DeliveredAt,
		CancelledAt:     dto.CancelledAt,
	}, nil
}
