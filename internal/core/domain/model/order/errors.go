package order

import (
	"errors"
	"fmt"

	"consignment/internal/core/domain/model/slot"
)

var (
	ErrInvalidTransition        = errors.New("invalid transition")
	ErrGateNotSatisfied         = errors.New("gate not satisfied")
	ErrInsufficientPrivilege    = errors.New("insufficient privilege")
	ErrCandidateCountOutOfRange = errors.New("candidate count out of range")
	ErrSlotNotOffered           = errors.New("slot was not offered")
	ErrOperationNotAllowed      = errors.New("operation not allowed in current status")
	ErrPickTicketFrozen         = errors.New("pick ticket is frozen")
	ErrStaleOrderState          = errors.New("stale order state")
)

// Gate names a precondition of a forward transition.
type Gate string

const (
	GatePickTicket       Gate = "pickTicket"
	GateSlotConfirmation Gate = "slotConfirmation"
)

type InvalidTransitionError struct {
	From Status
	To   Status
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s is not a single step", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type GateNotSatisfiedError struct {
	Gate Gate
}

func NewGateNotSatisfiedError(gate Gate) *GateNotSatisfiedError {
	return &GateNotSatisfiedError{Gate: gate}
}

func (e *GateNotSatisfiedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrGateNotSatisfied, e.Gate)
}

func (e *GateNotSatisfiedError) Unwrap() error {
	return ErrGateNotSatisfied
}

type InsufficientPrivilegeError struct {
	ActorID string
	Action  string
}

func NewInsufficientPrivilegeError(actorID, action string) *InsufficientPrivilegeError {
	return &InsufficientPrivilegeError{ActorID: actorID, Action: action}
}

func (e *InsufficientPrivilegeError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrInsufficientPrivilege, e.ActorID, e.Action)
}

func (e *InsufficientPrivilegeError) Unwrap() error {
	return ErrInsufficientPrivilege
}

type CandidateCountOutOfRangeError struct {
	Count int
}

func NewCandidateCountOutOfRangeError(count int) *CandidateCountOutOfRangeError {
	return &CandidateCountOutOfRangeError{Count: count}
}

func (e *CandidateCountOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: got %d, want %d to %d", ErrCandidateCountOutOfRange, e.Count, MinOfferedSlots, MaxOfferedSlots)
}

func (e *CandidateCountOutOfRangeError) Unwrap() error {
	return ErrCandidateCountOutOfRange
}

type SlotNotOfferedError struct {
	Slot slot.Slot
}

func NewSlotNotOfferedError(s slot.Slot) *SlotNotOfferedError {
	return &SlotNotOfferedError{Slot: s}
}

func (e *SlotNotOfferedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSlotNotOffered, e.Slot)
}

func (e *SlotNotOfferedError) Unwrap() error {
	return ErrSlotNotOffered
}

type OperationNotAllowedError struct {
	Operation string
	Current   Status
	Required  Status
}

func NewOperationNotAllowedError(operation string, current, required Status) *OperationNotAllowedError {
	return &OperationNotAllowedError{Operation: operation, Current: current, Required: required}
}

func (e *OperationNotAllowedError) Error() string {
	return fmt.Sprintf("%s: %s requires %s, order is %s", ErrOperationNotAllowed, e.Operation, e.Required, e.Current)
}

func (e *OperationNotAllowedError) Unwrap() error {
	return ErrOperationNotAllowed
}

// PickTicketFrozenError is returned when checklist items are submitted after
// the order has left PAID.
type PickTicketFrozenError struct {
	Status Status
}

func NewPickTicketFrozenError(status Status) *PickTicketFrozenError {
	return &PickTicketFrozenError{Status: status}
}

func (e *PickTicketFrozenError) Error() string {
	return fmt.Sprintf("%s: order is %s", ErrPickTicketFrozen, e.Status)
}

func (e *PickTicketFrozenError) Unwrap() error {
	return ErrPickTicketFrozen
}

// StaleOrderStateError is returned when a write loses a race with another
// write to the same order, or when the caller's expected version is outdated.
type StaleOrderStateError struct {
	OrderID string
	Cause   error
}

func NewStaleOrderStateError(orderID string, cause error) *StaleOrderStateError {
	return &StaleOrderStateError{OrderID: orderID, Cause: cause}
}

func (e *StaleOrderStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: order %s (cause: %v)", ErrStaleOrderState, e.OrderID, e.Cause)
	}
	return fmt.Sprintf("%s: order %s", ErrStaleOrderState, e.OrderID)
}

func (e *StaleOrderStateError) Unwrap() error {
	return ErrStaleOrderState
}
