package commands

import (
	"errors"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/guard"
)

var ErrOfferSlotsCommandIsNotConstructed = errors.New(
	"OfferSlotsCommand must be created via NewOfferSlotsCommand constructor",
)

// OfferSlotsCommand proposes two or three delivery slots to the buyer.
// override lets staff offer a slot that is already at capacity.
type OfferSlotsCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	candidates []slot.Slot
	override   bool
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewOfferSlotsCommand(
	orderID kernel.UUID,
	candidates []slot.Slot,
	override bool,
	actor kernel.Actor,
) (OfferSlotsCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return OfferSlotsCommand{}, err
	}

	return OfferSlotsCommand{
		orderID:    orderID,
		candidates: append([]slot.Slot(nil), candidates...),
		override:   override,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c OfferSlotsCommand) Validate() error {
	return c.guard.Validate(ErrOfferSlotsCommandIsNotConstructed)
}

func (c OfferSlotsCommand) OrderID() kernel.UUID { return c.orderID }
func (c OfferSlotsCommand) Override() bool       { return c.override }
func (c OfferSlotsCommand) Actor() kernel.Actor  { return c.actor }

func (c OfferSlotsCommand) Candidates() []slot.Slot {
	return append([]slot.Slot(nil), c.candidates...)
}
