package services

import (
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/pkg/errs"
)

const DefaultContestWindow = 24 * time.Hour

// FinalizationActor is recorded as statusUpdatedBy on automatic finalization.
var FinalizationActor = kernel.SystemActor("finalization-sweep")

// FinalizationPolicy decides when a delivered order can be settled: once the
// buyer's contest window has passed without a dispute.
type FinalizationPolicy struct {
	contestWindow time.Duration
}

func NewFinalizationPolicy(contestWindow time.Duration) (FinalizationPolicy, error) {
	if contestWindow <= 0 {
		return FinalizationPolicy{}, errs.NewValueIsOutOfRangeError("contestWindow", contestWindow, "1ns", "unbounded")
	}
	return FinalizationPolicy{contestWindow: contestWindow}, nil
}

func (p FinalizationPolicy) ContestWindow() time.Duration {
	return p.contestWindow
}

// Cutoff is the latest statusUpdatedAt of a delivered order that is due at now.
func (p FinalizationPolicy) Cutoff(now time.Time) time.Time {
	return now.Add(-p.contestWindow)
}

// Finalize promotes o to FINALIZED when it is due. ok is false, with no
// error, when the order does not qualify (any longer).
func (p FinalizationPolicy) Finalize(o *order.Order, now time.Time) (change order.StatusChange, ok bool, err error) {
	if err := o.Validate(); err != nil {
		return order.StatusChange{}, false, err
	}
	if !o.IsFinalizationDue(now, p.contestWindow) {
		return order.StatusChange{}, false, nil
	}
	change, err = o.Transition(order.Finalized, FinalizationActor, now)
	if err != nil {
		return order.StatusChange{}, false, err
	}
	return change, true, nil
}
