// Package queries contains the read side: plain SQL over the orders tables,
// scanned with scany into response structs. Queries never lock and never
// go through the unit of work.
package queries

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery reads the full staff view of one order.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type GetOrderQueryResponse struct {
	ID                    kernel.UUID
	ListingID             kernel.UUID
	BuyerID               kernel.UUID
	SellerID              kernel.UUID
	AmountMinor           int64
	Currency              string
	ShippingAddress       AddressView
	Status                order.Status
	StatusUpdatedAt       time.Time
	StatusUpdatedBy       string
	PickTicket            PickTicketView
	OfferedSlots          []slot.Slot
	ConfirmedSlot         *slot.Slot
	ScheduledPickupTime   *time.Time
	EstimatedDeliveryTime *time.Time
	DeliveryAttempts      int
	LastDeliveryAttempt   *time.Time
	DeliveryNotes         string
	Contested             bool
	ZipStatus             order.ZipStatus
	Version               int64
	CreatedAt             time.Time
}

// AddressView carries Raw for legacy orders and the structured fields
// otherwise; PostalCode is set in both cases when known.
type AddressView struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	Raw        string
}

type PickTicketView struct {
	Completed  []order.ChecklistItem
	Missing    []order.ChecklistItem
	IsComplete bool
}
