package commands

import (
	"context"
	"errors"

	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/ports"
	"consignment/internal/pkg/metrics"

	"go.uber.org/zap"
)

// TransitionOrderStatusCommandHandler applies a staff status change. The
// order row is locked for the duration of the transaction, the change is
// appended to the history, and the buyer is notified after commit when the
// order moved forward into EN_ROUTE, DELIVERED or FINALIZED.
type TransitionOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	notifier   ports.Notifier
	logger     *zap.Logger
}

func NewTransitionOrderStatusCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	notifier ports.Notifier,
	logger *zap.Logger,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
		logger:     nopLoggerIfNil(logger).With(zap.String("component", "transition-order-status")),
	}
}

func (h *TransitionOrderStatusCommandHandler) Handle(ctx context.Context, cmd TransitionOrderStatusCommand) error {
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

	if expected, ok := cmd.ExpectedVersion(); ok {
		if err = o.CheckVersion(expected); err != nil {
			return err
		}
	}

	change, err := o.Transition(cmd.Target(), cmd.Actor(), h.clock.Now())
	if err != nil {
		var gateErr *order.GateNotSatisfiedError
		if errors.As(err, &gateErr) {
			metrics.GateRejectionsTotal.WithLabelValues(string(gateErr.Gate)).Inc()
		}
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.TransitionHistoryRepository().Append(ctx, change); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(change.From.String(), change.To.String()).Inc()
	h.logger.Info("order status changed",
		zap.Stringer("orderId", o.ID()),
		zap.Stringer("from", change.From),
		zap.Stringer("to", change.To),
		zap.String("actor", change.Actor.ID()))

	if n, ok := statusNotification(o, change); ok {
		publish(ctx, h.notifier, h.logger, n)
	}
	return nil
}
