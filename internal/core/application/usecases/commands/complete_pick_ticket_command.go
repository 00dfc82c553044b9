package commands

import (
	"errors"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrCompletePickTicketCommandIsNotConstructed = errors.New(
	"CompletePickTicketCommand must be created via NewCompletePickTicketCommand constructor",
)

// CompletePickTicketCommand submits checked-off pick ticket items. Items are
// merged with the ones already recorded.
type CompletePickTicketCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	items   []order.ChecklistItem
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewCompletePickTicketCommand parses item names; unknown names are rejected.
func NewCompletePickTicketCommand(orderID kernel.UUID, items []string, actor kernel.Actor) (CompletePickTicketCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return CompletePickTicketCommand{}, err
	}
	if len(items) == 0 {
		return CompletePickTicketCommand{}, errs.NewValueIsRequiredError("items")
	}

	parsed := make([]order.ChecklistItem, 0, len(items))
	for _, name := range items {
		item, err := order.ParseChecklistItem(name)
		if err != nil {
			return CompletePickTicketCommand{}, err
		}
		parsed = append(parsed, item)
	}

	return CompletePickTicketCommand{
		orderID: orderID,
		items:   parsed,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompletePickTicketCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickTicketCommandIsNotConstructed)
}

func (c CompletePickTicketCommand) OrderID() kernel.UUID { return c.orderID }
func (c CompletePickTicketCommand) Actor() kernel.Actor  { return c.actor }

func (c CompletePickTicketCommand) Items() []order.ChecklistItem {
	return append([]order.ChecklistItem(nil), c.items...)
}
