// Package orderrepo persists the order aggregate: the order row, its line
// items, and the append-only status history. Items and history rows live in
// their own tables and are written by the repository in the same transaction
// as the order row.
package orderrepo

import (
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate. The money breakdown is
// flattened onto the row so the snapshot taken at creation time survives any
// later rate changes.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber string     `gorm:"uniqueIndex"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;index"`
	ChefID      uuid.UUID  `gorm:"type:uuid;index"`
	DriverID    *uuid.UUID `gorm:"type:uuid;index"`

	Status        string `gorm:"index"`
	RefundedCents int64

	SubtotalCents     int64
	PlatformFeeCents  int64
	ChefEarningsCents int64
	TaxCents          int64
	DeliveryFeeCents  int64
	TotalCents        int64
	PaymentRef        string

	PickupLat       float64
	PickupLng       float64
	DeliveryLat     float64
	DeliveryLng     float64
	DeliveryAddress string

	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time

	HistorySeq int
}

// TableName maps the DTO to the "orders" table.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line with the unit price snapshotted at order time.
type ItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID     uuid.UUID `gorm:"type:uuid"`
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// TableName maps the DTO to the "order_items" table.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO is one audit row of the status history. Rows are append-only;
// the composite unique index enforces the per-order Seq ordering at the
// storage level.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index:idx_order_history_seq,unique"`
	Seq        int       `gorm:"index:idx_order_history_seq,unique"`
	FromStatus string
	ToStatus   string
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	ActorRole  string
	Note       string
	At         time.Time
}

// TableName maps the DTO to the "order_history" table.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain flattens the aggregate into its order row, item rows, and the
// history rows recorded since it was loaded.
func fromDomain(aggregate *order.Order) (OrderDTO, []ItemDTO, []HistoryDTO) {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	breakdown := aggregate.Breakdown()
	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OrderNumber: aggregate.OrderNumber(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		ChefID:      aggregate.ChefID().Bytes(),
		DriverID:    driverID,

		Status:        string(aggregate.Status()),
		RefundedCents: aggregate.RefundedCents(),

		SubtotalCents:     breakdown.SubtotalCents(),
		PlatformFeeCents:  breakdown.PlatformFeeCents(),
		ChefEarningsCents: breakdown.ChefEarningsCents(),
		TaxCents:          breakdown.TaxCents(),
		DeliveryFeeCents:  breakdown.DeliveryFeeCents(),
		TotalCents:        breakdown.TotalCents(),
		PaymentRef:        aggregate.PaymentRef(),

		PickupLat:       aggregate.Pickup().Lat(),
		PickupLng:       aggregate.Pickup().Lng(),
		DeliveryLat:     aggregate.Delivery().Lat(),
		DeliveryLng:     aggregate.Delivery().Lng(),
		DeliveryAddress: aggregate.DeliveryAddress(),

		CreatedAt:   aggregate.CreatedAt(),
		AssignedAt:  aggregate.AssignedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		CancelledAt: aggregate.CancelledAt(),

		HistorySeq: aggregate.HistorySeq(),
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:             item.ID().Bytes(),
			OrderID:        dto.ID,
			MenuItemID:     item.MenuItemID().Bytes(),
			Name:           item.Name(),
			UnitPriceCents: item.UnitPriceCents(),
			Quantity:       item.Quantity(),
		})
	}

	history := make([]HistoryDTO, 0, len(aggregate.PendingHistory()))
	for _, entry := range aggregate.PendingHistory() {
		var actorID *uuid.UUID
		if entry.ActorID != nil {
			raw := entry.ActorID.Bytes()
			actorID = &raw
		}
		history = append(history, HistoryDTO{
			ID:         uuid.New(),
			OrderID:    dto.ID,
			Seq:        entry.Seq,
			FromStatus: string(entry.From),
			ToStatus:   string(entry.To),
			ActorID:    actorID,
			ActorRole:  entry.ActorRole,
			Note:       entry.Note,
			At:         entry.At,
		})
	}

	return dto, items, history
}

// toDomain reconstructs the aggregate from its order row and item rows.
func toDomain(dto OrderDTO, itemDTOs []ItemDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	chefID, err := kernel.UUIDFromBytes(dto.ChefID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	items := make([]order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(
			itemID, menuItemID, itemDTO.Name, itemDTO.UnitPriceCents, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	breakdown, err := order.NewBreakdown(
		dto.SubtotalCents,
		dto.PlatformFeeCents,
		dto.ChefEarningsCents,
		dto.TaxCents,
		dto.DeliveryFeeCents,
		dto.TotalCents,
	)
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.NewGeoPoint(dto.DeliveryLat, dto.DeliveryLng)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		chefID,
		driverID,
		items,
		breakdown,
		dto.PaymentRef,
		pickup,
		delivery,
		dto.DeliveryAddress,
		order.Status(dto.Status),
		dto.RefundedCents,
		dto.CreatedAt,
		dto.AssignedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		dto.CancelledAt,
		dto.HistorySeq,
	)
}
