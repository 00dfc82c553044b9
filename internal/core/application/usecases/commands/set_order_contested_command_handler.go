package commands

import (
	"context"
)

type SetOrderContestedCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetOrderContestedCommandHandler(uowFactory OrderUoWFactory) SetOrderContestedCommandHandler {
	return SetOrderContestedCommandHandler{uowFactory: uowFactory}
}

// Handle is idempotent: redelivered signals leave the order untouched.
func (h *SetOrderContestedCommandHandler) Handle(ctx context.Context, cmd SetOrderContestedCommand) error {
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

	if !o.SetContested(cmd.Contested()) {
		return nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
