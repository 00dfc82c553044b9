package commands

import (
	"context"

	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/services"
	"consignment/internal/core/ports"
	"consignment/internal/pkg/metrics"

	"go.uber.org/zap"
)

// OfferSlotsCommandHandler replaces the order's slot offer and notifies the
// buyer. Occupancy is read without the slot locks: an offer only promises
// availability at the time it is made, and confirmation re-checks.
type OfferSlotsCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  *services.SlotScheduler
	clock      ports.Clock
	notifier   ports.Notifier
	logger     *zap.Logger
}

func NewOfferSlotsCommandHandler(
	uowFactory OrderUoWFactory,
	scheduler *services.SlotScheduler,
	clock ports.Clock,
	notifier ports.Notifier,
	logger *zap.Logger,
) OfferSlotsCommandHandler {
	return OfferSlotsCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		clock:      clock,
		notifier:   notifier,
		logger:     nopLoggerIfNil(logger).With(zap.String("component", "offer-slots")),
	}
}

func (h *OfferSlotsCommandHandler) Handle(ctx context.Context, cmd OfferSlotsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().IsStaff() {
		return order.NewInsufficientPrivilegeError(cmd.Actor().ID(), "offer delivery slots")
	}

	now := h.clock.Now()

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

	from, to := h.scheduler.HorizonRange(now)
	occupancy, err := orderRepo.Occupancy(ctx, from, to)
	if err != nil {
		return err
	}

	if err = h.scheduler.Offer(o, cmd.Candidates(), occupancy, cmd.Override(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.SlotOffersTotal.Inc()
	publish(ctx, h.notifier, h.logger, ports.Notification{
		Type:       ports.EventSlotsOffered,
		OrderID:    o.ID(),
		BuyerID:    o.BuyerID(),
		Status:     o.Status(),
		Slots:      o.OfferedSlots(),
		OccurredAt: now,
	})
	return nil
}
