package queries

import (
	"errors"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrGetSlotCapacityQueryIsNotConstructed = errors.New(
	"GetSlotCapacityQuery must be created via NewGetSlotCapacityQuery constructor",
)

// GetSlotCapacityQuery reports the occupancy of one slot, as shown to staff
// while they prepare an offer for an order.
type GetSlotCapacityQuery struct {
	orderID kernel.UUID
	slot    slot.Slot
	guard   guard.ConstructorGuard
}

func NewGetSlotCapacityQuery(orderID kernel.UUID, s slot.Slot) (GetSlotCapacityQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetSlotCapacityQuery{}, err
	}
	if s.IsZero() {
		return GetSlotCapacityQuery{}, errs.NewValueIsRequiredError("slot")
	}
	return GetSlotCapacityQuery{orderID: orderID, slot: s, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSlotCapacityQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetSlotCapacityQuery) Slot() slot.Slot      { return q.slot }

func (q GetSlotCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetSlotCapacityQueryIsNotConstructed)
}

type GetSlotCapacityQueryResponse struct {
	Slot        slot.Slot
	Occupied    int
	Available   int
	MaxCapacity int
}
