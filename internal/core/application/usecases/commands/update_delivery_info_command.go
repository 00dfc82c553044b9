package commands

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

const MaxDeliveryNotesLength = 2000

var ErrUpdateDeliveryInfoCommandIsNotConstructed = errors.New(
	"UpdateDeliveryInfoCommand must be created via NewUpdateDeliveryInfoCommand constructor",
)

// UpdateDeliveryInfoCommand edits delivery attempt bookkeeping. Nil fields are
// left unchanged.
type UpdateDeliveryInfoCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	attempts    *int
	lastAttempt *time.Time
	notes       *string
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryInfoCommand(
	orderID kernel.UUID,
	attempts *int,
	lastAttempt *time.Time,
	notes *string,
	actor kernel.Actor,
) (UpdateDeliveryInfoCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return UpdateDeliveryInfoCommand{}, err
	}
	if attempts == nil && lastAttempt == nil && notes == nil {
		return UpdateDeliveryInfoCommand{}, errs.NewValueIsRequiredError("delivery info")
	}
	if notes != nil && len(*notes) > MaxDeliveryNotesLength {
		return UpdateDeliveryInfoCommand{}, errs.NewValueIsOutOfRangeError(
			"deliveryNotes length", len(*notes), 0, MaxDeliveryNotesLength)
	}

	return UpdateDeliveryInfoCommand{
		orderID:     orderID,
		attempts:    attempts,
		lastAttempt: lastAttempt,
		notes:       notes,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryInfoCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryInfoCommandIsNotConstructed)
}

func (c UpdateDeliveryInfoCommand) OrderID() kernel.UUID    { return c.orderID }
func (c UpdateDeliveryInfoCommand) Attempts() *int          { return c.attempts }
func (c UpdateDeliveryInfoCommand) LastAttempt() *time.Time { return c.lastAttempt }
func (c UpdateDeliveryInfoCommand) Notes() *string          { return c.notes }
func (c UpdateDeliveryInfoCommand) Actor() kernel.Actor     { return c.actor }
