package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpin "mealmarket/internal/adapters/in/http"
	"mealmarket/internal/adapters/out/georoute"
	"mealmarket/internal/adapters/out/postgres"
	"mealmarket/internal/adapters/out/postgres/outboxrepo"
	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/application/usecases/queries"
	"mealmarket/internal/core/domain/services"
	"mealmarket/internal/core/ports"
	"mealmarket/internal/jobs"
)

// CompositionRoot wires adapters into use case handlers. All handlers share
// one unit of work factory; queries read through the raw connection.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policy     services.CommissionPolicy
	notifier   ports.Notifier
	payments   ports.PaymentGateway
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	payments ports.PaymentGateway,
	logger *slog.Logger,
) (CompositionRoot, error) {
	policy, err := services.NewCommissionPolicy(
		config.PlatformFeeRate, config.TaxRate, config.DeliveryFeeCents)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
		notifier:   notifier,
		payments:   payments,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.policy, c.payments, c.config.PaymentTimeout)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateStartPreparingCommandHandler() commands.StartPreparingCommandHandler {
	return commands.NewStartPreparingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkReadyCommandHandler() commands.MarkReadyCommandHandler {
	return commands.NewMarkReadyCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(
		c.dispatchUoWFactory(), services.NewDispatchMatcher(), georoute.NewPlanner())
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	return commands.NewMarkPickedUpCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkInTransitCommandHandler() commands.MarkInTransitCommandHandler {
	return commands.NewMarkInTransitCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDeliveredCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.refundUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateRefundOrderCommandHandler() commands.RefundOrderCommandHandler {
	return commands.NewRefundOrderCommandHandler(c.refundUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateDeclineAssignmentCommandHandler() commands.DeclineAssignmentCommandHandler {
	return commands.NewDeclineAssignmentCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateExpireAssignmentsCommandHandler() commands.ExpireAssignmentsCommandHandler {
	return commands.NewExpireAssignmentsCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDriversNearQueryHandler() queries.DriversNearQueryHandler {
	return queries.NewDriversNearQueryHandler(c.gormDB)
}

// CreateHTTPHandlers bundles every handler the HTTP server dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		ConfirmPayment:    c.CreateConfirmPaymentCommandHandler(),
		AcceptOrder:       c.CreateAcceptOrderCommandHandler(),
		RejectOrder:       c.CreateRejectOrderCommandHandler(),
		StartPreparing:    c.CreateStartPreparingCommandHandler(),
		MarkReady:         c.CreateMarkReadyCommandHandler(),
		AssignDriver:      c.CreateAssignDriverCommandHandler(),
		MarkPickedUp:      c.CreateMarkPickedUpCommandHandler(),
		MarkInTransit:     c.CreateMarkInTransitCommandHandler(),
		MarkDelivered:     c.CreateMarkDeliveredCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		RefundOrder:       c.CreateRefundOrderCommandHandler(),
		AcceptAssignment:  c.CreateAcceptAssignmentCommandHandler(),
		DeclineAssignment: c.CreateDeclineAssignmentCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		DriversNear:       c.CreateDriversNearQueryHandler(),
	}
}

// CreateJobManager wires the background jobs. The relay reads the outbox
// outside any transaction.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		outboxrepo.NewGormOutboxRepository(c.gormDB),
		c.notifier,
		c.payments,
		c.CreateExpireAssignmentsCommandHandler(),
		c.config.AssignmentTimeout,
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) refundUoWFactory() commands.RefundUoWFactory {
	return FuncRefundUoWFactory(func() commands.RefundUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncRefundUoWFactory func() commands.RefundUoW

func (f FuncRefundUoWFactory) Create() commands.RefundUoW {
	return f()
}
