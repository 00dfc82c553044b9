package commands

import (
	"errors"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand asks to move an order one step forward or back.
// When expectedVersion is set the move only applies to that revision.
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	target          order.Status
	actor           kernel.Actor
	expectedVersion *int64

	guard guard.ConstructorGuard
}

func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actor kernel.Actor,
	expectedVersion *int64,
) (TransitionOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	cmd := TransitionOrderStatusCommand{
		orderID: orderID,
		target:  target,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}
	if expectedVersion != nil {
		v := *expectedVersion
		cmd.expectedVersion = &v
	}
	return cmd, nil
}

func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderStatusCommand) Target() order.Status { return c.target }
func (c TransitionOrderStatusCommand) Actor() kernel.Actor  { return c.actor }

// ExpectedVersion returns the revision the caller read, if it supplied one.
func (c TransitionOrderStatusCommand) ExpectedVersion() (int64, bool) {
	if c.expectedVersion == nil {
		return 0, false
	}
	return *c.expectedVersion, true
}
