package commands

import (
	"errors"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrConfirmSlotCommandIsNotConstructed = errors.New(
	"ConfirmSlotCommand must be created via NewConfirmSlotCommand constructor",
)

// ConfirmSlotCommand records the buyer's choice among the offered slots. Staff
// may confirm on the buyer's behalf.
type ConfirmSlotCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	chosen  slot.Slot
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewConfirmSlotCommand(orderID kernel.UUID, chosen slot.Slot, actor kernel.Actor) (ConfirmSlotCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return ConfirmSlotCommand{}, err
	}
	if chosen.IsZero() {
		return ConfirmSlotCommand{}, errs.NewValueIsRequiredError("slot")
	}

	return ConfirmSlotCommand{
		orderID: orderID,
		chosen:  chosen,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmSlotCommand) Validate() error {
	return c.guard.Validate(ErrConfirmSlotCommandIsNotConstructed)
}

func (c ConfirmSlotCommand) OrderID() kernel.UUID { return c.orderID }
func (c ConfirmSlotCommand) Chosen() slot.Slot    { return c.chosen }
func (c ConfirmSlotCommand) Actor() kernel.Actor  { return c.actor }
