package commands_test

import (
	"strings"
	"testing"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateDeliveryInfoCommand(t *testing.T) {
	_, err := commands.NewUpdateDeliveryInfoCommand(kernel.NewUUID(), nil, nil, nil, staffActor(t))
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	long := strings.Repeat("x", commands.MaxDeliveryNotesLength+1)
	_, err = commands.NewUpdateDeliveryInfoCommand(kernel.NewUUID(), nil, nil, &long, staffActor(t))
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestUpdateDeliveryInfoCommandHandler_DoesNotTouchStatus(t *testing.T) {
	ctx := t.Context()
	o := newDeliveredOrder(t, now)
	_, err := o.Transition(order.EnRoute, staffActor(t), now)
	require.NoError(t, err)

	attempts := 1
	notes := "nobody home, card left"
	lastAttempt := now
	cmd, err := commands.NewUpdateDeliveryInfoCommand(o.ID(), &attempts, &lastAttempt, &notes, staffActor(t))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryInfoCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, 1, o.DeliveryAttempts())
	assert.Equal(t, notes, o.DeliveryNotes())
	assert.Equal(t, order.EnRoute, o.Status())
	uow.AssertExpectations(t)
}

func TestSetOrderContestedCommandHandler(t *testing.T) {
	ctx := t.Context()
	o := newDeliveredOrder(t, now)
	cmd, err := commands.NewSetOrderContestedCommand(o.ID(), true)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Twice()
	repo.On("Update", ctx, o).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewSetOrderContestedCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.True(t, o.IsContested())

	// Redelivered signal: no second write.
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertNumberOfCalls(t, "Update", 1)
	uow.AssertExpectations(t)
}
