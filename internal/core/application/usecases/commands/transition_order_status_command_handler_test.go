package commands_test

import (
	"errors"
	"testing"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/ports"
	"consignment/internal/core/ports/mocks"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTransitionCommand(t *testing.T, id kernel.UUID, to order.Status, actor kernel.Actor, expected *int64) commands.TransitionOrderStatusCommand {
	t.Helper()
	cmd, err := commands.NewTransitionOrderStatusCommand(id, to, actor, expected)
	require.NoError(t, err)
	return cmd
}

func TestTransitionOrderStatusCommandHandler_PickTicketGate(t *testing.T) {
	ctx := t.Context()
	o := newPaidOrder(t)
	_, err := o.CompletePickTicket(order.ChecklistItems()[:4]...)
	require.NoError(t, err)
	cmd := newTransitionCommand(t, o.ID(), order.PendingScheduling, staffActor(t), nil)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory, fixedClock, nil, zap.NewNop())
	err = h.Handle(ctx, cmd)

	var gateErr *order.GateNotSatisfiedError
	require.ErrorAs(t, err, &gateErr)
	assert.Equal(t, order.GatePickTicket, gateErr.Gate)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Success(t *testing.T) {
	ctx := t.Context()
	o := newPaidOrder(t)
	_, err := o.CompletePickTicket(order.ChecklistItems()...)
	require.NoError(t, err)
	actor := staffActor(t)
	cmd := newTransitionCommand(t, o.ID(), order.PendingScheduling, actor, nil)

	repo := new(MockOrderRepository)
	history := new(MockHistoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("TransitionHistoryRepository").Return(history).Once(),
		history.On("Append", ctx, order.StatusChange{
			OrderID: o.ID(), From: order.Paid, To: order.PendingScheduling, Actor: actor, At: now,
		}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	// PENDING_SCHEDULING is not a buyer-facing milestone; no notification.
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)

	h := commands.NewTransitionOrderStatusCommandHandler(factory, fixedClock, notifier, zap.NewNop())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.PendingScheduling, o.Status())
	assert.Equal(t, now, o.StatusUpdatedAt())
	assert.Equal(t, actor.ID(), o.StatusUpdatedBy())
	repo.AssertExpectations(t)
	history.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_NotifiesDelivered(t *testing.T) {
	ctx := t.Context()
	o := newDeliveredOrder(t, now.Add(-time.Hour))
	_, err := o.Transition(order.EnRoute, staffActor(t), now.Add(-time.Hour))
	require.NoError(t, err)

	supervisor := newActor(t, "sup-1", kernel.RoleSupervisor)
	cmd := newTransitionCommand(t, o.ID(), order.Delivered, supervisor, nil)

	repo := new(MockOrderRepository)
	history := new(MockHistoryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("TransitionHistoryRepository").Return(history).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	history.On("Append", ctx, mock.AnythingOfType("order.StatusChange")).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		Notify(gomock.Any(), ports.Notification{
			Type:       ports.EventOrderDelivered,
			OrderID:    o.ID(),
			BuyerID:    o.BuyerID(),
			Status:     order.Delivered,
			OccurredAt: now,
		}).
		Return(errors.New("broker down")).
		Times(1)

	h := commands.NewTransitionOrderStatusCommandHandler(factory, fixedClock, notifier, zap.NewNop())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err, "notification failures must not fail the transition")
	assert.Equal(t, order.Delivered, o.Status())
}

func TestTransitionOrderStatusCommandHandler_StaleExpectedVersion(t *testing.T) {
	ctx := t.Context()
	o := newPendingOrder(t)
	o.AdvanceVersion()
	o.AdvanceVersion()
	stale := int64(1)
	cmd := newTransitionCommand(t, o.ID(), order.Paid, staffActor(t), &stale)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory, fixedClock, nil, nil)
	err := h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, order.ErrStaleOrderState)
	assert.Equal(t, order.PendingScheduling, o.Status())
}

func TestTransitionOrderStatusCommandHandler_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd := newTransitionCommand(t, id, order.Scheduled, staffActor(t), nil)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderId", id)).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory, fixedClock, nil, nil)
	err := h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionOrderStatusCommandHandler_BuyerRejected(t *testing.T) {
	ctx := t.Context()
	o := newPendingOrder(t)
	buyer := newActor(t, o.BuyerID().String(), kernel.RoleBuyer)
	cmd := newTransitionCommand(t, o.ID(), order.Paid, buyer, nil)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory, fixedClock, nil, nil)
	err := h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, order.ErrInsufficientPrivilege)
}
