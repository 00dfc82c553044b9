package commands

import (
	"errors"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/guard"
)

var ErrValidateOrderZipCodeCommandIsNotConstructed = errors.New(
	"ValidateOrderZipCodeCommand must be created via NewValidateOrderZipCodeCommand constructor",
)

// ValidateOrderZipCodeCommand checks the order's postal code once and caches
// the answer on the order.
type ValidateOrderZipCodeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewValidateOrderZipCodeCommand(orderID kernel.UUID) (ValidateOrderZipCodeCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ValidateOrderZipCodeCommand{}, err
	}
	return ValidateOrderZipCodeCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ValidateOrderZipCodeCommand) Validate() error {
	return c.guard.Validate(ErrValidateOrderZipCodeCommandIsNotConstructed)
}

func (c ValidateOrderZipCodeCommand) OrderID() kernel.UUID {
	return c.orderID
}
