package order

import (
	"fmt"

	"consignment/internal/pkg/errs"
)

// ChecklistItem is one step of the physical pick-and-pack procedure.
type ChecklistItem string

const (
	ItemVerifyCondition       ChecklistItem = "verifyCondition"
	ItemCheckDamage           ChecklistItem = "checkDamage"
	ItemPhotographDifferences ChecklistItem = "photographDifferences"
	ItemPackageSecurely       ChecklistItem = "packageSecurely"
	ItemUpdateStatus          ChecklistItem = "updateStatus"
)

// ChecklistItems returns every item in display order.
func ChecklistItems() []ChecklistItem {
	return []ChecklistItem{
		ItemVerifyCondition,
		ItemCheckDamage,
		ItemPhotographDifferences,
		ItemPackageSecurely,
		ItemUpdateStatus,
	}
}

func ParseChecklistItem(s string) (ChecklistItem, error) {
	for _, item := range ChecklistItems() {
		if string(item) == s {
			return item, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("checklist item is invalid", fmt.Errorf("%q is not a checklist item", s))
}

// PickTicket is the set of completed checklist items. It is immutable; With
// returns an updated copy.
type PickTicket struct {
	done map[ChecklistItem]struct{}
}

// NewPickTicket builds a ticket from already completed items, e.g. when
// restoring from storage. Duplicates are tolerated.
func NewPickTicket(items ...ChecklistItem) (PickTicket, error) {
	done := make(map[ChecklistItem]struct{}, len(items))
	for _, item := range items {
		if _, err := ParseChecklistItem(string(item)); err != nil {
			return PickTicket{}, err
		}
		done[item] = struct{}{}
	}
	return PickTicket{done: done}, nil
}

// With merges items into the ticket. changed is false when every item was
// already completed.
func (p PickTicket) With(items ...ChecklistItem) (merged PickTicket, changed bool, err error) {
	done := make(map[ChecklistItem]struct{}, len(p.done)+len(items))
	for item := range p.done {
		done[item] = struct{}{}
	}
	for _, item := range items {
		if _, err := ParseChecklistItem(string(item)); err != nil {
			return p, false, err
		}
		if _, ok := done[item]; !ok {
			done[item] = struct{}{}
			changed = true
		}
	}
	return PickTicket{done: done}, changed, nil
}

func (p PickTicket) Has(item ChecklistItem) bool {
	_, ok := p.done[item]
	return ok
}

// Completed lists the completed items in display order.
func (p PickTicket) Completed() []ChecklistItem {
	out := make([]ChecklistItem, 0, len(p.done))
	for _, item := range ChecklistItems() {
		if p.Has(item) {
			out = append(out, item)
		}
	}
	return out
}

// Missing lists the outstanding items in display order.
func (p PickTicket) Missing() []ChecklistItem {
	var out []ChecklistItem
	for _, item := range ChecklistItems() {
		if !p.Has(item) {
			out = append(out, item)
		}
	}
	return out
}

func (p PickTicket) IsComplete() bool {
	return len(p.Missing()) == 0
}
