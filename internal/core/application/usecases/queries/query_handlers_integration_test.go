package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mealmarket/internal/adapters/out/postgres/driverrepo"
	"mealmarket/internal/adapters/out/postgres/orderrepo"
	"mealmarket/internal/core/application/usecases/queries"
	"mealmarket/internal/core/domain/model/driver"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/pkg/errs"
)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	orderRepo  *orderrepo.GormOrderRepository
	driverRepo *driverrepo.GormDriverRepository
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.HistoryDTO{},
		&driverrepo.DriverDTO{})
	suite.Require().NoError(err)

	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
	suite.driverRepo = driverrepo.NewGormDriverRepository(db)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, order_history, drivers").Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_ReturnsFullReadModel() {
	ctx := context.Background()

	testOrder := suite.seedOrder("ORD-20260829-1001")
	customer := order.NewActor(testOrder.CustomerID(), order.RoleCustomer)
	suite.Require().NoError(testOrder.ConfirmPayment(customer, time.Now()))
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), result.ID)
	suite.Equal("ORD-20260829-1001", result.OrderNumber)
	suite.Equal(string(order.PaymentConfirmed), result.Status)
	suite.Equal(int64(11300), result.Breakdown.TotalCents)
	suite.Equal(int64(8500), result.Breakdown.ChefEarningsCents)
	suite.Len(result.Items, 2)
	suite.Len(result.History, 2)
	suite.Equal(string(order.Pending), result.History[0].ToStatus)
	suite.Equal(string(order.PaymentConfirmed), result.History[1].ToStatus)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_NonExistent_ReturnsNotFound() {
	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_FiltersByStatusAndCustomer() {
	ctx := context.Background()

	pendingOrder := suite.seedOrder("ORD-20260829-2001")
	suite.Require().NoError(suite.orderRepo.Add(ctx, pendingOrder))

	confirmedOrder := suite.seedOrder("ORD-20260829-2002")
	customer := order.NewActor(confirmedOrder.CustomerID(), order.RoleCustomer)
	suite.Require().NoError(confirmedOrder.ConfirmPayment(customer, time.Now()))
	suite.Require().NoError(suite.orderRepo.Add(ctx, confirmedOrder))

	handler := queries.NewListOrdersQueryHandler(suite.db)

	status := order.Pending
	query, err := queries.NewListOrdersQuery(&status, nil, nil, nil, 0)
	suite.Require().NoError(err)

	rows, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(pendingOrder.ID(), rows[0].ID)
	suite.Equal("ORD-20260829-2001", rows[0].OrderNumber)

	customerID := confirmedOrder.CustomerID()
	query, err = queries.NewListOrdersQuery(nil, &customerID, nil, nil, 0)
	suite.Require().NoError(err)

	rows, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(confirmedOrder.ID(), rows[0].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_EmptyDatabase_ReturnsEmptySlice() {
	handler := queries.NewListOrdersQueryHandler(suite.db)
	query, err := queries.NewListOrdersQuery(nil, nil, nil, nil, 0)
	suite.Require().NoError(err)

	rows, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(rows)
}

func (suite *QueryHandlersIntegrationTestSuite) TestDriversNear_ReturnsDispatchableWithinRadiusOrdered() {
	ctx := context.Background()

	center, err := kernel.NewGeoPoint(40.7128, -74.0060)
	suite.Require().NoError(err)

	suite.seedDriver("Near Driver", 40.7180, -74.0010, true, driver.VerificationApproved)
	suite.seedDriver("Nearer Driver", 40.7140, -74.0050, true, driver.VerificationApproved)
	suite.seedDriver("Far Driver", 41.2033, -73.8700, true, driver.VerificationApproved)
	suite.seedDriver("Off Shift", 40.7130, -74.0055, false, driver.VerificationApproved)
	suite.seedDriver("Unverified", 40.7135, -74.0058, true, driver.VerificationPending)

	handler := queries.NewDriversNearQueryHandler(suite.db)
	query, err := queries.NewDriversNearQuery(center, 5, 0)
	suite.Require().NoError(err)

	rows, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(rows, 2)
	suite.Equal("Nearer Driver", rows[0].Name)
	suite.Equal("Near Driver", rows[1].Name)
	suite.Less(rows[0].DistanceKm, rows[1].DistanceKm)
}

func (suite *QueryHandlersIntegrationTestSuite) TestDriversNear_RatingBreaksTiesAndLimitCaps() {
	ctx := context.Background()

	center, err := kernel.NewGeoPoint(40.7128, -74.0060)
	suite.Require().NoError(err)

	// Same spot, so all three are equidistant from the center.
	suite.seedRatedDriver("Three Stars", 40.7150, -74.0030, 3.0)
	suite.seedRatedDriver("Five Stars", 40.7150, -74.0030, 5.0)
	suite.seedRatedDriver("Four Stars", 40.7150, -74.0030, 4.0)

	handler := queries.NewDriversNearQueryHandler(suite.db)
	query, err := queries.NewDriversNearQuery(center, 5, 2)
	suite.Require().NoError(err)

	rows, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(rows, 2)
	suite.Equal("Five Stars", rows[0].Name)
	suite.Equal("Four Stars", rows[1].Name)
}

func (suite *QueryHandlersIntegrationTestSuite) TestDriversNear_FindsEastWestNeighborsAtHighLatitude() {
	ctx := context.Background()

	center, err := kernel.NewGeoPoint(70.0, 25.0)
	suite.Require().NoError(err)

	// About 9 km due east; a longitude degree spans only ~38 km this far
	// north, so a window sized for the equator would miss it.
	suite.seedDriver("Arctic Driver", 70.0, 25.2364, true, driver.VerificationApproved)

	handler := queries.NewDriversNearQueryHandler(suite.db)
	query, err := queries.NewDriversNearQuery(center, 10, 0)
	suite.Require().NoError(err)

	rows, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(rows, 1)
	suite.Equal("Arctic Driver", rows[0].Name)
	suite.InDelta(9.0, rows[0].DistanceKm, 0.5)
}

func (suite *QueryHandlersIntegrationTestSuite) seedOrder(orderNumber string) *order.Order {
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
		kernel.NewUUID(), orderNumber, kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{itemA, itemB}, pickup, delivery,
		"12 Mott St, New York", breakdown, "pi_query_test", time.Now())
	suite.Require().NoError(err)
	return testOrder
}

func (suite *QueryHandlersIntegrationTestSuite) seedDriver(
	name string, lat, lng float64, available bool, verification driver.VerificationStatus,
) {
	location, err := kernel.NewGeoPoint(lat, lng)
	suite.Require().NoError(err)

	aggregate, err := driver.RestoreDriver(
		kernel.NewUUID(), name, available, verification, &location, 4.8, 10, 5000)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.driverRepo.Add(context.Background(), aggregate))
}

func (suite *QueryHandlersIntegrationTestSuite) seedRatedDriver(
	name string, lat, lng, rating float64,
) {
	location, err := kernel.NewGeoPoint(lat, lng)
	suite.Require().NoError(err)

	aggregate, err := driver.RestoreDriver(
		kernel.NewUUID(), name, true, driver.VerificationApproved, &location, rating, 10, 5000)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.driverRepo.Add(context.Background(), aggregate))
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
