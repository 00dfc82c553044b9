package order

import (
	"errors"
	"fmt"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/errs"
)

const (
	MinOfferedSlots = 2
	MaxOfferedSlots = 3
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root tracking a purchased item from payment capture
// to final settlement.
type Order struct {
	id        kernel.UUID
	listingID kernel.UUID
	buyerID   kernel.UUID
	sellerID  kernel.UUID

	amount          kernel.Money
	shippingAddress kernel.Address

	status          Status
	statusUpdatedAt time.Time
	statusUpdatedBy string

	pickTicket PickTicket

	offeredSlots          []slot.Slot
	confirmedSlot         slot.Slot
	scheduledPickupTime   *time.Time
	estimatedDeliveryTime *time.Time

	deliveryAttempts    int
	lastDeliveryAttempt *time.Time
	deliveryNotes       string

	contested bool
	zipStatus ZipStatus

	// version is the persisted revision; repositories compare and advance it.
	version   int64
	createdAt time.Time

	isConstructed bool
}

// StatusChange describes one applied transition. It is what the history
// repository records and what notifications are built from.
type StatusChange struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	Actor   kernel.Actor
	At      time.Time
}

// NewOrder creates an order in PAID. The creating actor is recorded as the
// first statusUpdatedBy.
func NewOrder(
	id, listingID, buyerID, sellerID kernel.UUID,
	amount kernel.Money,
	shippingAddress kernel.Address,
	createdBy kernel.Actor,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		listingID.Validate(),
		buyerID.Validate(),
		sellerID.Validate(),
		amount.Validate(),
		shippingAddress.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	ticket, _ := NewPickTicket()
	return &Order{
		id:              id,
		listingID:       listingID,
		buyerID:         buyerID,
		sellerID:        sellerID,
		amount:          amount,
		shippingAddress: shippingAddress,
		status:          Paid,
		statusUpdatedAt: now,
		statusUpdatedBy: createdBy.ID(),
		pickTicket:      ticket,
		zipStatus:       ZipUnchecked,
		createdAt:       now,
		isConstructed:   true,
	}, nil
}

// Snapshot carries the full persisted state of an order. Repositories build
// one from storage and hand it to RestoreOrder.
type Snapshot struct {
	ID, ListingID, BuyerID, SellerID kernel.UUID
	Amount                           kernel.Money
	ShippingAddress                  kernel.Address
	Status                           Status
	StatusUpdatedAt                  time.Time
	StatusUpdatedBy                  string
	PickTicket                       PickTicket
	OfferedSlots                     []slot.Slot
	ConfirmedSlot                    slot.Slot
	ScheduledPickupTime              *time.Time
	EstimatedDeliveryTime            *time.Time
	DeliveryAttempts                 int
	LastDeliveryAttempt              *time.Time
	DeliveryNotes                    string
	Contested                        bool
	ZipStatus                        ZipStatus
	Version                          int64
	CreatedAt                        time.Time
}

func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.Status.Validate(),
		s.ZipStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if s.Status > PendingScheduling && s.ConfirmedSlot.IsZero() {
		return nil, errs.NewValueIsRequiredErrorWithCause("confirmedSlot",
			fmt.Errorf("order %s is %s without a confirmed slot", s.ID, s.Status))
	}

	return &Order{
		id:                    s.ID,
		listingID:             s.ListingID,
		buyerID:               s.BuyerID,
		sellerID:              s.SellerID,
		amount:                s.Amount,
		shippingAddress:       s.ShippingAddress,
		status:                s.Status,
		statusUpdatedAt:       s.StatusUpdatedAt,
		statusUpdatedBy:       s.StatusUpdatedBy,
		pickTicket:            s.PickTicket,
		offeredSlots:          append([]slot.Slot(nil), s.OfferedSlots...),
		confirmedSlot:         s.ConfirmedSlot,
		scheduledPickupTime:   s.ScheduledPickupTime,
		estimatedDeliveryTime: s.EstimatedDeliveryTime,
		deliveryAttempts:      s.DeliveryAttempts,
		lastDeliveryAttempt:   s.LastDeliveryAttempt,
		deliveryNotes:         s.DeliveryNotes,
		contested:             s.Contested,
		zipStatus:             s.ZipStatus,
		version:               s.Version,
		createdAt:             s.CreatedAt,
		isConstructed:         true,
	}, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) ListingID() kernel.UUID          { return o.listingID }
func (o *Order) BuyerID() kernel.UUID            { return o.buyerID }
func (o *Order) SellerID() kernel.UUID           { return o.sellerID }
func (o *Order) Amount() kernel.Money            { return o.amount }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) StatusUpdatedAt() time.Time      { return o.statusUpdatedAt }
func (o *Order) StatusUpdatedBy() string         { return o.statusUpdatedBy }
func (o *Order) PickTicket() PickTicket          { return o.pickTicket }
func (o *Order) ConfirmedSlot() slot.Slot        { return o.confirmedSlot }
func (o *Order) DeliveryAttempts() int           { return o.deliveryAttempts }
func (o *Order) DeliveryNotes() string           { return o.deliveryNotes }
func (o *Order) IsContested() bool               { return o.contested }
func (o *Order) ZipStatus() ZipStatus            { return o.zipStatus }
func (o *Order) Version() int64                  { return o.version }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }

func (o *Order) OfferedSlots() []slot.Slot {
	return append([]slot.Slot(nil), o.offeredSlots...)
}

func (o *Order) ScheduledPickupTime() *time.Time   { return copyTime(o.scheduledPickupTime) }
func (o *Order) EstimatedDeliveryTime() *time.Time { return copyTime(o.estimatedDeliveryTime) }
func (o *Order) LastDeliveryAttempt() *time.Time   { return copyTime(o.lastDeliveryAttempt) }

// PickTicketCompleted reports whether the PAID gate is open.
func (o *Order) PickTicketCompleted() bool {
	return o.pickTicket.IsComplete()
}

// CheckVersion fails with StaleOrderStateError when the caller read an older
// revision than the one loaded.
func (o *Order) CheckVersion(expected int64) error {
	if expected != o.version {
		return NewStaleOrderStateError(o.id.String(),
			errs.NewVersionIsInvalidErrorWithCause("expectedVersion", fmt.Errorf("expected %d, current %d", expected, o.version)))
	}
	return nil
}

// AdvanceVersion is called by repositories once a write of this order has
// been accepted by storage.
func (o *Order) AdvanceVersion() {
	o.version++
}

// Transition moves the order one step forward or back on behalf of actor.
//
// Forward moves out of PAID and PENDING_SCHEDULING are gated on the pick
// ticket and on the confirmed slot. Buyers can never change status. Only a
// privileged actor (supervisor or system) may enter or leave FINALIZED.
// Rolling back into PENDING_SCHEDULING clears the confirmed slot and its
// derived times; rolling back into PAID clears the offered slots.
func (o *Order) Transition(to Status, actor kernel.Actor, now time.Time) (StatusChange, error) {
	if err := actor.Validate(); err != nil {
		return StatusChange{}, err
	}
	if actor.Role() == kernel.RoleBuyer {
		return StatusChange{}, NewInsufficientPrivilegeError(actor.ID(), "change order status")
	}

	step, err := o.status.checkStep(to)
	if err != nil {
		return StatusChange{}, err
	}

	if step > 0 {
		switch o.status {
		case Paid:
			if !o.pickTicket.IsComplete() {
				return StatusChange{}, NewGateNotSatisfiedError(GatePickTicket)
			}
		case PendingScheduling:
			if o.confirmedSlot.IsZero() {
				return StatusChange{}, NewGateNotSatisfiedError(GateSlotConfirmation)
			}
		}
		if to == Finalized && !actor.IsPrivileged() {
			return StatusChange{}, NewInsufficientPrivilegeError(actor.ID(), "finalize an order")
		}
	} else {
		if o.status == Finalized && !actor.IsPrivileged() {
			return StatusChange{}, NewInsufficientPrivilegeError(actor.ID(), "reopen a finalized order")
		}
		switch to {
		case PendingScheduling:
			o.releaseConfirmedSlot()
		case Paid:
			o.offeredSlots = nil
		}
	}

	change := StatusChange{OrderID: o.id, From: o.status, To: to, Actor: actor, At: now}
	o.status = to
	o.statusUpdatedAt = now
	o.statusUpdatedBy = actor.ID()
	return change, nil
}

// CompletePickTicket merges items into the checklist. changed is false when
// the submission added nothing, in which case the order is left untouched
// whatever its status. Adding items is only allowed while PAID.
func (o *Order) CompletePickTicket(items ...ChecklistItem) (changed bool, err error) {
	merged, changed, err := o.pickTicket.With(items...)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	if o.status != Paid {
		return false, NewPickTicketFrozenError(o.status)
	}
	o.pickTicket = merged
	return true, nil
}

// OfferSlots replaces the offered candidates. Horizon and capacity checks are
// the scheduler's job; the aggregate enforces status, count and distinctness.
// A slot confirmed earlier is released together with its derived times, so
// the order cannot move on until the buyer answers the new offer.
func (o *Order) OfferSlots(candidates []slot.Slot) error {
	if o.status != PendingScheduling {
		return NewOperationNotAllowedError("offer slots", o.status, PendingScheduling)
	}
	if len(candidates) < MinOfferedSlots || len(candidates) > MaxOfferedSlots {
		return NewCandidateCountOutOfRangeError(len(candidates))
	}
	seen := make(map[slot.Slot]struct{}, len(candidates))
	for _, c := range candidates {
		if c.IsZero() {
			return errs.NewValueIsRequiredError("candidate slot")
		}
		if _, dup := seen[c]; dup {
			return errs.NewValueIsInvalidErrorWithCause("candidates are invalid", fmt.Errorf("slot %s offered twice", c))
		}
		seen[c] = struct{}{}
	}
	o.offeredSlots = append([]slot.Slot(nil), candidates...)
	o.releaseConfirmedSlot()
	return nil
}

// HoldsSlot reports whether the order's confirmed slot is s.
func (o *Order) HoldsSlot(s slot.Slot) bool {
	return !o.confirmedSlot.IsZero() && o.confirmedSlot == s
}

func (o *Order) releaseConfirmedSlot() {
	o.confirmedSlot = slot.Slot{}
	o.scheduledPickupTime = nil
	o.estimatedDeliveryTime = nil
}

// IsOffered reports whether s is among the current candidates.
func (o *Order) IsOffered(s slot.Slot) bool {
	for _, offered := range o.offeredSlots {
		if offered == s {
			return true
		}
	}
	return false
}

// ConfirmSlot records the buyer's choice. pickup and delivery are the bounds
// of the chosen window; capacity is checked by the caller under a slot lock.
func (o *Order) ConfirmSlot(chosen slot.Slot, pickup, delivery time.Time) error {
	if o.status != PendingScheduling {
		return NewOperationNotAllowedError("confirm slot", o.status, PendingScheduling)
	}
	if !o.IsOffered(chosen) {
		return NewSlotNotOfferedError(chosen)
	}
	if !delivery.After(pickup) {
		return errs.NewValueIsInvalidErrorWithCause("delivery window is invalid",
			fmt.Errorf("estimated delivery %s is not after pickup %s", delivery, pickup))
	}
	o.confirmedSlot = chosen
	o.scheduledPickupTime = &pickup
	o.estimatedDeliveryTime = &delivery
	o.offeredSlots = nil
	return nil
}

// UpdateDeliveryInfo edits the staff-maintained delivery attempt fields. Nil
// arguments leave the field as is. These fields never gate a transition.
func (o *Order) UpdateDeliveryInfo(attempts *int, lastAttempt *time.Time, notes *string) error {
	if attempts != nil && *attempts < 0 {
		return errs.NewValueIsOutOfRangeError("deliveryAttempts", *attempts, 0, "unbounded")
	}
	if attempts != nil {
		o.deliveryAttempts = *attempts
	}
	if lastAttempt != nil {
		o.lastDeliveryAttempt = copyTime(lastAttempt)
	}
	if notes != nil {
		o.deliveryNotes = *notes
	}
	return nil
}

// SetContested records whether a buyer dispute is open. It returns false when
// the flag already had that value.
func (o *Order) SetContested(contested bool) bool {
	if o.contested == contested {
		return false
	}
	o.contested = contested
	return true
}

// RecordZipStatus caches the validator answer. Unknown is not cached.
func (o *Order) RecordZipStatus(status ZipStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == ZipUnknown || status == ZipUnchecked {
		return errs.NewValueIsInvalidErrorWithCause("zip status is invalid",
			fmt.Errorf("%s is not a validator result", status))
	}
	o.zipStatus = status
	return nil
}

// IsFinalizationDue reports whether the contest window after delivery has
// elapsed at now. Contested orders are never due.
func (o *Order) IsFinalizationDue(now time.Time, contestWindow time.Duration) bool {
	if o.status != Delivered || o.contested {
		return false
	}
	return !now.Before(o.statusUpdatedAt.Add(contestWindow))
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
