package commands

import (
	"context"

	"consignment/internal/core/domain/model/order"
	"consignment/internal/pkg/metrics"
)

// CompletePickTicketCommandHandler records pick ticket progress. A submission
// that adds nothing new is acknowledged without writing.
type CompletePickTicketCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCompletePickTicketCommandHandler(uowFactory OrderUoWFactory) CompletePickTicketCommandHandler {
	return CompletePickTicketCommandHandler{uowFactory: uowFactory}
}

func (h *CompletePickTicketCommandHandler) Handle(ctx context.Context, cmd CompletePickTicketCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().IsStaff() {
		return order.NewInsufficientPrivilegeError(cmd.Actor().ID(), "complete a pick ticket")
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

	changed, err := o.CompletePickTicket(cmd.Items()...)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if o.PickTicketCompleted() {
		metrics.PickTicketsCompletedTotal.Inc()
	}
	return nil
}
