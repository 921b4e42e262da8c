package http

import (
	"time"

	"mealmarket/internal/core/application/usecases/queries"
)

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createOrderRequest struct {
	CustomerID       string                   `json:"customerId"`
	ChefID           string                   `json:"chefId"`
	Items            []createOrderItemRequest `json:"items"`
	DeliveryLat      float64                  `json:"deliveryLat"`
	DeliveryLng      float64                  `json:"deliveryLng"`
	DeliveryAddress  string                   `json:"deliveryAddress"`
	DeliveryFeeCents *int64                   `json:"deliveryFeeCents,omitempty"`
}

type createOrderItemRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

type createOrderResponse struct {
	OrderID string `json:"orderId"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type assignDriverRequest struct {
	DriverID string   `json:"driverId,omitempty"`
	RadiusKm *float64 `json:"radiusKm,omitempty"`
}

type assignDriverResponse struct {
	AssignmentID string `json:"assignmentId"`
}

type refundOrderRequest struct {
	Reason      string `json:"reason"`
	AmountCents *int64 `json:"amountCents,omitempty"`
}

type orderSummary struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"totalCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

type orderBreakdown struct {
	SubtotalCents     int64 `json:"subtotalCents"`
	PlatformFeeCents  int64 `json:"platformFeeCents"`
	ChefEarningsCents int64 `json:"chefEarningsCents"`
	TaxCents          int64 `json:"taxCents"`
	DeliveryFeeCents  int64 `json:"deliveryFeeCents"`
	TotalCents        int64 `json:"totalCents"`
}

type orderItem struct {
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

type orderHistoryEntry struct {
	Seq        int       `json:"seq"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	ActorRole  string    `json:"actorRole"`
	Note       string    `json:"note,omitempty"`
	At         time.Time `json:"at"`
}

type orderDetail struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	CustomerID      string              `json:"customerId"`
	ChefID          string              `json:"chefId"`
	DriverID        string              `json:"driverId,omitempty"`
	Status          string              `json:"status"`
	RefundedCents   int64               `json:"refundedCents"`
	Breakdown       orderBreakdown      `json:"breakdown"`
	Items           []orderItem         `json:"items"`
	History         []orderHistoryEntry `json:"history"`
	DeliveryAddress string              `json:"deliveryAddress"`
	CreatedAt       time.Time           `json:"createdAt"`
	AssignedAt      *time.Time          `json:"assignedAt,omitempty"`
	PickedUpAt      *time.Time          `json:"pickedUpAt,omitempty"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time          `json:"cancelledAt,omitempty"`
}

type nearbyDriver struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Rating     float64 `json:"rating"`
	DistanceKm float64 `json:"distanceKm"`
}

func toOrderSummary(row queries.ListOrdersQueryResponse) orderSummary {
	return orderSummary{
		ID:          row.ID.String(),
		OrderNumber: row.OrderNumber,
		Status:      row.Status,
		TotalCents:  row.TotalCents,
		CreatedAt:   row.CreatedAt,
	}
}

func toOrderDetail(row queries.GetOrderQueryResponse) orderDetail {
	detail := orderDetail{
		ID:            row.ID.String(),
		OrderNumber:   row.OrderNumber,
		CustomerID:    row.CustomerID.String(),
		ChefID:        row.ChefID.String(),
		Status:        row.Status,
		RefundedCents: row.RefundedCents,
		Breakdown: orderBreakdown{
			SubtotalCents:     row.Breakdown.SubtotalCents,
			PlatformFeeCents:  row.Breakdown.PlatformFeeCents,
			ChefEarningsCents: row.Breakdown.ChefEarningsCents,
			TaxCents:          row.Breakdown.TaxCents,
			DeliveryFeeCents:  row.Breakdown.DeliveryFeeCents,
			TotalCents:        row.Breakdown.TotalCents,
		},
		Items:           make([]orderItem, 0, len(row.Items)),
		History:         make([]orderHistoryEntry, 0, len(row.History)),
		DeliveryAddress: row.DeliveryAddress,
		CreatedAt:       row.CreatedAt,
		AssignedAt:      row.AssignedAt,
		PickedUpAt:      row.PickedUpAt,
		DeliveredAt:     row.DeliveredAt,
		CancelledAt:     row.CancelledAt,
	}
	if row.DriverID != nil {
		detail.DriverID = row.DriverID.String()
	}

	for _, item := range row.Items {
		detail.Items = append(detail.Items, orderItem{
			MenuItemID:     item.MenuItemID.String(),
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}
	for _, entry := range row.History {
		detail.History = append(detail.History, orderHistoryEntry{
			Seq:        entry.Seq,
			FromStatus: entry.FromStatus,
			ToStatus:   entry.ToStatus,
			ActorRole:  entry.ActorRole,
			Note:       entry.Note,
			At:         entry.At,
		})
	}
	return detail
}

func toNearbyDriver(row queries.DriversNearQueryResponse) nearbyDriver {
	return nearbyDriver{
		ID:         row.ID.String(),
		Name:       row.Name,
		Lat:        row.Location.Lat(),
		Lng:        row.Location.Lng(),
		Rating:     row.Rating,
		DistanceKm: row.DistanceKm,
	}
}
