package queries

import (
	"errors"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// DefaultListLimit bounds list results when the caller does not specify a
// limit.
const DefaultListLimit = 50

// ListOrdersQuery retrieves order summaries, optionally filtered by status
// and by the customer, chef, or driver involved. Filters combine with AND;
// nil filters match everything.
type ListOrdersQuery struct {
	status     *order.Status
	customerID *kernel.UUID
	chefID     *kernel.UUID
	driverID   *kernel.UUID
	limit      int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a filtered order listing query. A limit of zero
// or less falls back to DefaultListLimit.
func NewListOrdersQuery(
	status *order.Status,
	customerID, chefID, driverID *kernel.UUID,
	limit int,
) (ListOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	for _, id := range []*kernel.UUID{customerID, chefID, driverID} {
		if id != nil {
			if err := id.Validate(); err != nil {
				return ListOrdersQuery{}, err
			}
		}
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	return ListOrdersQuery{
		status:     status,
		customerID: customerID,
		chefID:     chefID,
		driverID:   driverID,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the status filter, nil for all statuses.
func (q ListOrdersQuery) Status() *order.Status { return q.status }

// CustomerID returns the customer filter, nil for all customers.
func (q ListOrdersQuery) CustomerID() *kernel.UUID { return q.customerID }

// ChefID returns the chef filter, nil for all chefs.
func (q ListOrdersQuery) ChefID() *kernel.UUID { return q.chefID }

// DriverID returns the driver filter, nil for all drivers.
func (q ListOrdersQuery) DriverID() *kernel.UUID { return q.driverID }

// Limit returns the maximum number of rows to return.
func (q ListOrdersQuery) Limit() int { return q.limit }

// ListOrdersQueryResponse is one order summary row.
type ListOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	Status      string
	TotalCents  int64
	CreatedAt   time.Time
}
