package commands

import (
	"errors"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/guard"
)

var ErrSetOrderContestedCommandIsNotConstructed = errors.New(
	"SetOrderContestedCommand must be created via NewSetOrderContestedCommand constructor",
)

// SetOrderContestedCommand relays a dispute opened or resolved by the buyer.
// A contested order is never finalized automatically.
type SetOrderContestedCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	contested bool

	guard guard.ConstructorGuard
}

func NewSetOrderContestedCommand(orderID kernel.UUID, contested bool) (SetOrderContestedCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SetOrderContestedCommand{}, err
	}
	return SetOrderContestedCommand{
		orderID:   orderID,
		contested: contested,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetOrderContestedCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderContestedCommandIsNotConstructed)
}

func (c SetOrderContestedCommand) OrderID() kernel.UUID { return c.orderID }
func (c SetOrderContestedCommand) Contested() bool      { return c.contested }
