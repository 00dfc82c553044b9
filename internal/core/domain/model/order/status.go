package order

import (
	"fmt"

	"consignment/internal/pkg/errs"
)

// Status is the lifecycle state of an order. The lifecycle is a fixed line:
//
//	Paid ─> PendingScheduling ─> Scheduled ─> EnRoute ─> Delivered ─> Finalized
//
// An order moves exactly one step at a time, forward or back. Gates on
// leaving Paid and PendingScheduling and privilege rules around Finalized are
// enforced by Order.Transition.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Paid is the initial status set by payment capture.
	Paid

	// PendingScheduling means the pick ticket is done and a delivery slot is
	// being negotiated with the buyer.
	PendingScheduling

	// Scheduled means the buyer confirmed a slot.
	Scheduled

	EnRoute

	Delivered

	// Finalized is reached automatically once the contest window after
	// delivery has elapsed, or by supervisor override.
	Finalized
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "UNKNOWN",
		Paid:              "PAID",
		PendingScheduling: "PENDING_SCHEDULING",
		Scheduled:         "SCHEDULED",
		EnRoute:           "EN_ROUTE",
		Delivered:         "DELIVERED",
		Finalized:         "FINALIZED",
	}
}

// Statuses returns the lifecycle in order.
func Statuses() []Status {
	return []Status{Paid, PendingScheduling, Scheduled, EnRoute, Delivered, Finalized}
}

// ParseStatus maps the wire name (e.g. "EN_ROUTE") to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if s < Paid || s > Finalized {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Next returns the following status, or false for Finalized and invalid values.
func (s Status) Next() (Status, bool) {
	if s.Validate() != nil || s == Finalized {
		return Unknown, false
	}
	return s + 1, true
}

// Previous returns the preceding status, or false for Paid and invalid values.
func (s Status) Previous() (Status, bool) {
	if s.Validate() != nil || s == Paid {
		return Unknown, false
	}
	return s - 1, true
}

// checkStep returns +1 or -1 when to is adjacent to s, and an
// InvalidTransitionError otherwise.
func (s Status) checkStep(to Status) (int, error) {
	if s.Validate() != nil || to.Validate() != nil {
		return 0, NewInvalidTransitionError(s, to)
	}
	switch to - s {
	case 1:
		return 1, nil
	case -1:
		return -1, nil
	default:
		return 0, NewInvalidTransitionError(s, to)
	}
}
