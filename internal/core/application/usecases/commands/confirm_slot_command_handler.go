package commands

import (
	"context"
	"errors"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/core/domain/services"
	"consignment/internal/core/ports"
	"consignment/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ConfirmSlotCommandHandler books the chosen slot. Within one transaction it
// locks the order row, then the slot, counts the slot's confirmed orders and
// books only if a seat is left. Concurrent confirmations of the last seat
// therefore have exactly one winner.
type ConfirmSlotCommandHandler struct {
	uowFactory UoWFactory
	scheduler  *services.SlotScheduler
	clock      ports.Clock
	logger     *zap.Logger
}

func NewConfirmSlotCommandHandler(
	uowFactory UoWFactory,
	scheduler *services.SlotScheduler,
	clock ports.Clock,
	logger *zap.Logger,
) ConfirmSlotCommandHandler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return ConfirmSlotCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		clock:      clock,
		logger:     nopLoggerIfNil(logger).With(zap.String("component", "confirm-slot")),
	}
}

func (h *ConfirmSlotCommandHandler) Handle(ctx context.Context, cmd ConfirmSlotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = authorizeConfirmation(cmd.Actor(), o); err != nil {
		return err
	}

	if err = uow.LockSlot(ctx, cmd.Chosen()); err != nil {
		return err
	}

	occupied, err := orderRepo.CountConfirmedInSlot(ctx, cmd.Chosen())
	if err != nil {
		return err
	}

	if err = h.scheduler.Confirm(o, cmd.Chosen(), occupied, h.clock.Now()); err != nil {
		if errors.Is(err, slot.ErrSlotNoLongerAvailable) {
			metrics.SlotConfirmationsTotal.WithLabelValues("unavailable").Inc()
			h.logger.Info("slot filled before confirmation",
				zap.Stringer("orderId", o.ID()),
				zap.String("slot", cmd.Chosen().Key()),
				zap.Int("occupied", occupied))
		}
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.SlotConfirmationsTotal.WithLabelValues("confirmed").Inc()
	return nil
}

// authorizeConfirmation lets staff confirm any order and a buyer only their own.
func authorizeConfirmation(actor kernel.Actor, o *order.Order) error {
	switch {
	case actor.IsStaff():
		return nil
	case actor.Role() == kernel.RoleBuyer && actor.ID() == o.BuyerID().String():
		return nil
	default:
		return order.NewInsufficientPrivilegeError(actor.ID(), "confirm a slot for this order")
	}
}
