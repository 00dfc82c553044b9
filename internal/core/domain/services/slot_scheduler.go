package services

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
)

var ErrCalendarIsRequired = errors.New("scheduling calendar is required")

// Occupancy maps a slot to the number of orders that have confirmed it.
// Missing slots are empty.
type Occupancy map[slot.Slot]int

// SlotAvailability is one cell of the scheduling grid.
type SlotAvailability struct {
	Slot     slot.Slot
	Window   slot.Window
	Capacity slot.Capacity
}

// SlotScheduler negotiates delivery slots between staff and buyer against the
// configured calendar and per-slot capacity.
type SlotScheduler struct {
	calendar *slot.Calendar
}

func NewSlotScheduler(calendar *slot.Calendar) (*SlotScheduler, error) {
	if calendar == nil {
		return nil, ErrCalendarIsRequired
	}
	return &SlotScheduler{calendar: calendar}, nil
}

func (s *SlotScheduler) Calendar() *slot.Calendar {
	return s.calendar
}

// Offer replaces the order's candidates after checking that each one is a
// configured window inside the horizon and, unless override is set, still has
// a free seat.
func (s *SlotScheduler) Offer(
	o *order.Order,
	candidates []slot.Slot,
	occupancy Occupancy,
	override bool,
	now time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Status() != order.PendingScheduling {
		return order.NewOperationNotAllowedError("offer slots", o.Status(), order.PendingScheduling)
	}
	if len(candidates) < order.MinOfferedSlots || len(candidates) > order.MaxOfferedSlots {
		return order.NewCandidateCountOutOfRangeError(len(candidates))
	}

	for _, c := range candidates {
		if err := s.calendar.CheckOfferable(now, c); err != nil {
			return err
		}
		if override {
			continue
		}
		if capacity := s.calendar.Capacity(occupiedByOthers(o, c, occupancy[c])); capacity.IsFull() {
			return slot.NewSlotNoLongerAvailableError(c, capacity)
		}
	}

	return o.OfferSlots(candidates)
}

// Confirm records the buyer's choice. occupied must be counted while the
// caller holds the slot lock, so that concurrent confirmations of the same
// slot observe each other. An offered slot whose date has left the horizon
// since the offer can no longer be confirmed.
func (s *SlotScheduler) Confirm(o *order.Order, chosen slot.Slot, occupied int, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Status() != order.PendingScheduling {
		return order.NewOperationNotAllowedError("confirm slot", o.Status(), order.PendingScheduling)
	}
	if !o.IsOffered(chosen) {
		return order.NewSlotNotOfferedError(chosen)
	}

	if err := s.calendar.CheckOfferable(now, chosen); err != nil {
		return err
	}

	capacity := s.calendar.Capacity(occupiedByOthers(o, chosen, occupied))
	if capacity.IsFull() {
		return slot.NewSlotNoLongerAvailableError(chosen, capacity)
	}

	pickup, delivery, err := s.calendar.Bounds(chosen)
	if err != nil {
		return err
	}
	return o.ConfirmSlot(chosen, pickup, delivery)
}

// occupiedByOthers drops the order's own seat from a count that includes it.
func occupiedByOthers(o *order.Order, s slot.Slot, occupied int) int {
	if o.HoldsSlot(s) && occupied > 0 {
		return occupied - 1
	}
	return occupied
}

// Capacity reports occupancy of a single slot.
func (s *SlotScheduler) Capacity(occupied int) slot.Capacity {
	return s.calendar.Capacity(occupied)
}

// Grid lists every slot of the horizon with its current availability.
func (s *SlotScheduler) Grid(now time.Time, occupancy Occupancy) []SlotAvailability {
	slots := s.calendar.Grid(now)
	grid := make([]SlotAvailability, 0, len(slots))
	for _, sl := range slots {
		w, _ := s.calendar.Window(sl.WindowID())
		grid = append(grid, SlotAvailability{
			Slot:     sl,
			Window:   w,
			Capacity: s.calendar.Capacity(occupancy[sl]),
		})
	}
	return grid
}

// HorizonRange returns the first and last bookable dates at now.
func (s *SlotScheduler) HorizonRange(now time.Time) (slot.Date, slot.Date) {
	first := s.calendar.Today(now)
	return first, first.AddDays(s.calendar.HorizonDays() - 1)
}
