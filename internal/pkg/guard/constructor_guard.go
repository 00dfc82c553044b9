// Package guard provides ConstructorGuard, a marker embedded in value objects,
// aggregates and commands so that zero values created with a struct literal
// can be told apart from values built by their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard. A zero-value guard
// fails validation.
//
// Example:
//
//	var ErrSlotOfferNotConstructed = errors.New("SlotOffer must be created via NewSlotOffer")
//
//	type SlotOffer struct {
//	    slots []slot.Slot
//	    guard guard.ConstructorGuard
//	}
//
//	func (o SlotOffer) Validate() error {
//	    return o.guard.Validate(ErrSlotOfferNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
