package commands

import (
	"errors"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a paid order on behalf of the payment-capture
// collaborator.
//
// Example:
//
//	amount, _ := kernel.NewMoney(125050, "USD")
//	address, _ := kernel.NewAddress("1 Main St", "Springfield", "IL", "62701", "US")
//	cmd, err := NewCreateOrderCommand(orderID, listingID, buyerID, sellerID, amount, address, actor)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	listingID kernel.UUID
	buyerID   kernel.UUID
	sellerID  kernel.UUID
	amount    kernel.Money
	address   kernel.Address
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID, listingID, buyerID, sellerID kernel.UUID,
	amount kernel.Money,
	address kernel.Address,
	actor kernel.Actor,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		listingID.Validate(),
		buyerID.Validate(),
		sellerID.Validate(),
		amount.Validate(),
		address.Validate(),
		actor.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:   orderID,
		listingID: listingID,
		buyerID:   buyerID,
		sellerID:  sellerID,
		amount:    amount,
		address:   address,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderCommand) ListingID() kernel.UUID  { return c.listingID }
func (c CreateOrderCommand) BuyerID() kernel.UUID    { return c.buyerID }
func (c CreateOrderCommand) SellerID() kernel.UUID   { return c.sellerID }
func (c CreateOrderCommand) Amount() kernel.Money    { return c.amount }
func (c CreateOrderCommand) Address() kernel.Address { return c.address }
func (c CreateOrderCommand) Actor() kernel.Actor     { return c.actor }
