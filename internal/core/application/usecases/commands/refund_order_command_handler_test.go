package commands_test

import (
	"testing"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/ledger"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/services"
	"mealmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRefundOrderCommandHandler_Handle_PartialRefund(t *testing.T) {
	ctx := t.Context()

	testOrder := testOrderInStatus(t, order.Cancelled, nil)
	cmd, err := commands.NewRefundOrderCommand(
		testOrder.ID(), kernel.NewUUID(), "goodwill gesture", 5650)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		// A 50% refund of the 11300 total prorates the original 8500/1500
		// chef and platform components.
		ledgerRepo.On("Add", ctx, mock.AnythingOfType("[]*ledger.Entry")).
			Run(func(args mock.Arguments) {
				entries := args.Get(1).([]*ledger.Entry)
				require.Len(t, entries, 2)
				assert.Equal(t, int64(-4250), entries[0].AmountCents())
				assert.Equal(t, int64(-750), entries[1].AmountCents())
			}).Return(nil).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("[]*outbox.Message")).Return(nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("[]*outbox.Message")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRefundUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRefundOrderCommandHandler(factory, services.DefaultCommissionPolicy())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, testOrder.Status())
	assert.Equal(t, int64(5650), testOrder.RefundedCents())
	ledgerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRefundOrderCommandHandler_Handle_FullRefundCompletesOrder(t *testing.T) {
	ctx := t.Context()

	testOrder := testOrderInStatus(t, order.Rejected, nil)
	cmd, err := commands.NewRefundOrderCommand(
		testOrder.ID(), kernel.NewUUID(), "rejected by chef", -1)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledgerRepo := new(MockLedgerRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Add", ctx, mock.AnythingOfType("[]*ledger.Entry")).Return(nil).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("[]*outbox.Message")).Return(nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("[]*outbox.Message")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRefundUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRefundOrderCommandHandler(factory, services.DefaultCommissionPolicy())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Refunded, testOrder.Status())
	assert.True(t, testOrder.IsFullyRefunded())
}

func TestRefundOrderCommandHandler_Handle_ExceedsRemainingBalance(t *testing.T) {
	ctx := t.Context()

	testOrder := testOrderInStatus(t, order.Cancelled, nil)
	cmd, err := commands.NewRefundOrderCommand(
		testOrder.ID(), kernel.NewUUID(), "typo in amount", 99999)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRefundUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRefundOrderCommandHandler(factory, services.DefaultCommissionPolicy())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusinessRule)
	assert.Zero(t, testOrder.RefundedCents())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
