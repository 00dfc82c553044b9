package queries

import (
	"errors"

	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/guard"
)

var ErrGetSchedulingGridQueryIsNotConstructed = errors.New(
	"GetSchedulingGridQuery must be created via NewGetSchedulingGridQuery constructor",
)

// GetSchedulingGridQuery lists every slot of the rolling horizon with its
// availability. It has no parameters; the horizon starts today.
type GetSchedulingGridQuery struct {
	guard guard.ConstructorGuard
}

func NewGetSchedulingGridQuery() GetSchedulingGridQuery {
	return GetSchedulingGridQuery{guard: guard.NewConstructorGuard()}
}

func (q GetSchedulingGridQuery) Validate() error {
	return q.guard.Validate(ErrGetSchedulingGridQueryIsNotConstructed)
}

type GetSchedulingGridQueryResponse struct {
	Slot        slot.Slot
	Label       string
	Occupied    int
	Available   int
	MaxCapacity int
}
