package slot

import (
	"errors"
	"fmt"
)

// ErrSlotNoLongerAvailable is returned when a slot has reached capacity,
// either when staff try to offer it or when the buyer tries to confirm it.
var ErrSlotNoLongerAvailable = errors.New("slot no longer available")

type SlotNoLongerAvailableError struct {
	Slot     Slot
	Occupied int
	Max      int
}

func NewSlotNoLongerAvailableError(s Slot, c Capacity) *SlotNoLongerAvailableError {
	return &SlotNoLongerAvailableError{Slot: s, Occupied: c.Occupied(), Max: c.MaxCapacity()}
}

func (e *SlotNoLongerAvailableError) Error() string {
	return fmt.Sprintf("%s: %s is at capacity (%d/%d)", ErrSlotNoLongerAvailable, e.Slot, e.Occupied, e.Max)
}

func (e *SlotNoLongerAvailableError) Unwrap() error {
	return ErrSlotNoLongerAvailable
}
