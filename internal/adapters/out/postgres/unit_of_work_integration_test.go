package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "mealmarket/internal/adapters/out/postgres"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/model/outbox"
	"mealmarket/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL database: transaction lifecycle, atomic multi-repository
// writes, and rollback behavior.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgresadapter.AutoMigrate(db))

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, order_history, outbox_messages").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.OutboxRepository())
	suite.NotNil(uow2.LedgerRepository())
	suite.NotNil(uow2.AssignmentRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	// Begin on an open unit of work is a no-op, not a nested transaction.
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBeginFails() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackWithoutBeginIsNoOp() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitPersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()
	message := suite.createNotifyMessage(testOrder.ID())

	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, message))

	// Uncommitted writes are visible inside the transaction.
	inTx, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), inTx.ID())

	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	persisted, err := fresh.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.OrderNumber(), persisted.OrderNumber())

	pending, err := fresh.OutboxRepository().GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(message.ID(), pending[0].ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsAllWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()
	message := suite.createNotifyMessage(testOrder.ID())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, message))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertRowCount("orders", 0)
	suite.assertRowCount("order_items", 0)
	suite.assertRowCount("order_history", 0)
	suite.assertRowCount("outbox_messages", 0)
}

// createTestOrder builds a two-line order with a consistent money breakdown.
func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	itemA, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Dumplings", 3000, 2)
	suite.Require().NoError(err)
	itemB, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Green Tea", 1000, 4)
	suite.Require().NoError(err)

	breakdown, err := order.NewBreakdown(10000, 1500, 8500, 800, 500, 11300)
	suite.Require().NoError(err)

	pickup, err := kernel.NewGeoPoint(40.7128, -74.0060)
	suite.Require().NoError(err)
	delivery, err := kernel.NewGeoPoint(40.7306, -73.9866)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-20260829-0042",
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{itemA, itemB},
		pickup,
		delivery,
		"12 Mott St, New York",
		breakdown,
		"pi_uow_test",
		time.Now(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createNotifyMessage(orderID kernel.UUID) *outbox.Message {
	message, err := outbox.NewMessage(
		kernel.NewUUID(),
		orderID,
		outbox.KindNotify,
		"orders.created",
		[]byte(`{"orderId":"`+orderID.String()+`"}`),
		time.Now(),
	)
	suite.Require().NoError(err)
	return message
}

func (suite *UnitOfWorkIntegrationTestSuite) assertRowCount(table string, expected int) {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
