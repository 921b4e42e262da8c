package commands_test

import (
	"context"
	"testing"
	"time"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/domain/model/chef"
	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/ledger"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/model/outbox"
	"mealmarket/internal/core/domain/services"
	"mealmarket/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockChefRepository struct{ mock.Mock }

func (m *MockChefRepository) Add(ctx context.Context, c *chef.Chef) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChefRepository) Update(ctx context.Context, c *chef.Chef) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChefRepository) Get(ctx context.Context, id kernel.UUID) (*chef.Chef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chef.Chef), args.Error(1)
}

func (m *MockChefRepository) GetMenuItems(ctx context.Context, ids []kernel.UUID) ([]*chef.MenuItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chef.MenuItem), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllDispatchable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *driver.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *driver.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetPendingByOrder(ctx context.Context, orderID kernel.UUID) (*driver.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetStalePending(ctx context.Context, cutoff time.Time) ([]*driver.Assignment, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Assignment), args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) Add(ctx context.Context, entries ...*ledger.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*ledger.Entry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

// MockUoW implements every repository factory, so the same mock serves each
// of the narrow unit-of-work interfaces the handlers depend on.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ChefRepository() ports.ChefRepository {
	args := m.Called()
	return args.Get(0).(ports.ChefRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

type MockRefundUoWFactory struct{ mock.Mock }

func (m *MockRefundUoWFactory) Create() commands.RefundUoW {
	args := m.Called()
	return args.Get(0).(commands.RefundUoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, orderID kernel.UUID, amountCents int64) (string, error) {
	args := m.Called(ctx, orderID, amountCents)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, paymentRef string, amountCents int64) error {
	args := m.Called(ctx, paymentRef, amountCents)
	return args.Error(0)
}

type MockRoutePlanner struct{ mock.Mock }

func (m *MockRoutePlanner) DistanceAndETA(ctx context.Context, from, to kernel.GeoPoint) (ports.Route, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(ports.Route), args.Error(1)
}

// testOrderInStatus builds an order restored into the given status, with a
// $100.00 subtotal under the default commission policy.
func testOrderInStatus(
	t *testing.T, status order.Status, driverID *kernel.UUID,
) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Pad Thai", 5000, 2)
	require.NoError(t, err)

	breakdown, err := services.DefaultCommissionPolicy().Calculate(10000)
	require.NoError(t, err)

	pickup, err := kernel.NewGeoPoint(40.7128, -74.0060)
	require.NoError(t, err)
	delivery, err := kernel.NewGeoPoint(40.7228, -74.0060)
	require.NoError(t, err)

	var assignedAt *time.Time
	if driverID != nil {
		at := time.Now()
		assignedAt = &at
	}

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), "ORD-20260829-TEST0001",
		kernel.NewUUID(), kernel.NewUUID(), driverID,
		[]order.Item{item}, breakdown, "pi_test_123",
		pickup, delivery, "1 Main St",
		status, 0,
		time.Now(), assignedAt, nil, nil, nil,
		3,
	)
	require.NoError(t, err)
	return aggregate
}
