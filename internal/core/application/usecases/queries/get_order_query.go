// Package queries holds the read side of the marketplace core. Query
// handlers bypass the aggregates and read projection rows straight through
// GORM, so listing and detail endpoints never pay aggregate reconstruction
// cost or contend for row locks.
package queries

import (
	"errors"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items, money breakdown,
// and status history.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	CustomerID      kernel.UUID
	ChefID          kernel.UUID
	DriverID        *kernel.UUID
	Status          string
	RefundedCents   int64
	Breakdown       BreakdownResponse
	Items           []ItemResponse
	History         []HistoryResponse
	DeliveryAddress string
	CreatedAt       time.Time
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// BreakdownResponse is the persisted money split of an order.
type BreakdownResponse struct {
	SubtotalCents     int64
	PlatformFeeCents  int64
	ChefEarningsCents int64
	TaxCents          int64
	DeliveryFeeCents  int64
	TotalCents        int64
}

// ItemResponse is one order line in the read model.
type ItemResponse struct {
	MenuItemID     kernel.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// HistoryResponse is one audit row of the status history.
type HistoryResponse struct {
	Seq        int
	FromStatus string
	ToStatus   string
	ActorRole  string
	Note       string
	At         time.Time
}
