package commands

import (
	"context"

	"consignment/internal/core/domain/model/order"
)

type UpdateDeliveryInfoCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateDeliveryInfoCommandHandler(uowFactory OrderUoWFactory) UpdateDeliveryInfoCommandHandler {
	return UpdateDeliveryInfoCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateDeliveryInfoCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryInfoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().IsStaff() {
		return order.NewInsufficientPrivilegeError(cmd.Actor().ID(), "edit delivery info")
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

	if err = o.UpdateDeliveryInfo(cmd.Attempts(), cmd.LastAttempt(), cmd.Notes()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
